package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/client/session"
)

// ProfileService reads user profiles. An empty userID, or the id of the
// logged-in user, means the own profile.
type ProfileService struct {
	gw      client.Gateway
	session *session.Session
}

func NewProfileService(gw client.Gateway, s *session.Session) *ProfileService {
	return &ProfileService{gw: gw, session: s}
}

func (p *ProfileService) isOwn(userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return true
	}
	u, ok := p.session.User()
	return ok && strconv.FormatInt(u.ID, 10) == userID
}

func (p *ProfileService) Get(ctx context.Context, userID string) (models.User, error) {
	if p.isOwn(userID) {
		if !p.session.IsAuthenticated() {
			return models.User{}, ErrNotAuthenticated
		}
		return decodeUser(p.gw.Call(ctx, "/users/profile", nil))
	}
	return decodeUser(p.gw.Call(ctx, "/users/"+url.PathEscape(strings.TrimSpace(userID)), nil))
}

func (p *ProfileService) Items(ctx context.Context, userID string) ([]models.Item, error) {
	var res client.Result
	if p.isOwn(userID) {
		if !p.session.IsAuthenticated() {
			return nil, ErrNotAuthenticated
		}
		res = p.gw.Call(ctx, "/items/my-items", nil)
	} else {
		res = p.gw.Call(ctx, "/items", &client.RequestOptions{
			Query: url.Values{"seller_id": {strings.TrimSpace(userID)}},
		})
	}
	coll, err := decodeItems(res)
	if err != nil {
		return nil, err
	}
	return coll.Items, nil
}
