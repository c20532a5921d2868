package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/client/storage"
	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultFeaturedLimit = 8
	MaxItemImages        = 10
)

var ItemConditions = []string{"new_with_tags", "like_new", "good", "fair"}

type ItemService interface {
	Get(ctx context.Context, id int64) (models.Item, error)
	Featured(ctx context.Context, limit int) ([]models.Item, error)
	Categories(ctx context.Context) ([]models.Category, error)
	MyItems(ctx context.Context) ([]models.Item, error)
	Create(ctx context.Context, form ItemForm, images []storage.Image) (models.Item, error)
}

// ItemForm is the "sell an item" form.
type ItemForm struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Size        string  `json:"size,omitempty"`
	Color       string  `json:"color,omitempty"`
	Condition   string  `json:"condition" validate:"required"`
}

type itemService struct {
	gw       client.Gateway
	uploader storage.ImageUploader
	validate *validator.Validate
	log      logging.Logger
}

// NewItemService builds an ItemService. A nil uploader falls back to
// placeholder images.
func NewItemService(gw client.Gateway, uploader storage.ImageUploader, log logging.Logger) ItemService {
	if uploader == nil {
		uploader = storage.PlaceholderUploader{}
	}
	return &itemService{
		gw:       gw,
		uploader: uploader,
		validate: validator.New(),
		log:      log.With("service", "items"),
	}
}

func (s *itemService) Get(ctx context.Context, id int64) (models.Item, error) {
	var it models.Item
	res := s.gw.Call(ctx, "/items/"+strconv.FormatInt(id, 10), &client.RequestOptions{FallbackError: "Item not found"})
	if err := decodeWrapped(res, "item", &it); err != nil {
		return models.Item{}, err
	}
	return it, nil
}

func (s *itemService) Featured(ctx context.Context, limit int) ([]models.Item, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	res := s.gw.Call(ctx, "/items/featured", &client.RequestOptions{
		Query: url.Values{"limit": {strconv.Itoa(limit)}},
	})
	coll, err := decodeItems(res)
	if err != nil {
		return nil, err
	}
	return coll.Items, nil
}

func (s *itemService) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := decodeWrapped(s.gw.Call(ctx, "/categories", nil), "categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *itemService) MyItems(ctx context.Context) ([]models.Item, error) {
	coll, err := decodeItems(s.gw.Call(ctx, "/items/my-items", nil))
	if err != nil {
		return nil, err
	}
	return coll.Items, nil
}

// Create validates the form, uploads the images and posts the listing. No
// upload or API call happens when the form is incomplete.
func (s *itemService) Create(ctx context.Context, form ItemForm, images []storage.Image) (models.Item, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Category = strings.TrimSpace(form.Category)
	form.Condition = strings.TrimSpace(form.Condition)

	if err := s.validate.Struct(form); err != nil {
		return models.Item{}, invalid("Please fill in all required fields")
	}
	if len(images) > MaxItemImages {
		return models.Item{}, invalid(fmt.Sprintf("You can add at most %d photos", MaxItemImages))
	}
	for _, img := range images {
		if _, err := storage.DetectImage(img.Data); err != nil {
			return models.Item{}, invalid(fmt.Sprintf("%s is not an image", img.Name))
		}
	}

	urls := make([]string, 0, len(images))
	for i, img := range images {
		img.Index = i
		u, err := s.uploader.Upload(ctx, img)
		if err != nil {
			return models.Item{}, fmt.Errorf("upload %s: %w", img.Name, err)
		}
		urls = append(urls, u)
	}

	body := struct {
		ItemForm
		Images []string `json:"images"`
	}{ItemForm: form, Images: urls}

	res := s.gw.Call(ctx, "/items", &client.RequestOptions{
		Method:        http.MethodPost,
		Body:          body,
		FallbackError: "Failed to create item",
	})

	var it models.Item
	if err := decodeWrapped(res, "item", &it); err != nil {
		return models.Item{}, err
	}
	s.log.Info(ctx, "item created", "item_id", it.ID, "images", len(urls))
	return it, nil
}
