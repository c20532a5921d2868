package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/secondwear/internal/client/services"
	"github.com/dmitrijs2005/secondwear/internal/client/storage"
	"github.com/dmitrijs2005/secondwear/internal/filex"
)

// readImage is a test seam for filex.ReadImage.
var readImage = filex.ReadImage

// Sell walks through the listing form and publishes the item.
func (a *App) Sell(ctx context.Context) error {
	if a.items == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	var form services.ItemForm
	var err error

	if form.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if form.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	if price != "" {
		if form.Price, err = strconv.ParseFloat(price, 64); err != nil {
			return fmt.Errorf("invalid price %q", price)
		}
	}
	if form.Category, err = getSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}
	if form.Subcategory, err = getSimpleText(a.reader, "Subcategory (optional)", a.out); err != nil {
		return err
	}
	condition := "Condition (" + strings.Join(services.ItemConditions, ", ") + ")"
	if form.Condition, err = getSimpleText(a.reader, condition, a.out); err != nil {
		return err
	}
	if form.Brand, err = getSimpleText(a.reader, "Brand (optional)", a.out); err != nil {
		return err
	}
	if form.Size, err = getSimpleText(a.reader, "Size (optional)", a.out); err != nil {
		return err
	}
	if form.Color, err = getSimpleText(a.reader, "Color (optional)", a.out); err != nil {
		return err
	}

	paths, err := GetList(a.reader, fmt.Sprintf("Photo file paths, up to %d", services.MaxItemImages), a.out)
	if err != nil {
		return err
	}
	images := make([]storage.Image, 0, len(paths))
	for i, p := range paths {
		data, err := readImage(p)
		if err != nil {
			return err
		}
		images = append(images, storage.Image{Index: i, Name: filepath.Base(p), Data: data})
	}

	it, err := a.items.Create(ctx, form, images)
	if err != nil {
		return err
	}
	a.printf("Listed %s\n", it)
	return nil
}

func (a *App) MyItems(ctx context.Context) error {
	if a.items == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	items, err := a.items.MyItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.printf("You have no listings yet\n")
		return nil
	}
	for _, it := range items {
		status := ""
		if it.IsSold {
			status = " [sold]"
		}
		a.printf("%s%s\n", it, status)
	}
	return nil
}
