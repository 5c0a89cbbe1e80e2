package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tech-Artist89/Passwortmanager/internal/common"
	"github.com/Tech-Artist89/Passwortmanager/internal/models"
)

func (a *App) printCategoryTree(nodes []*models.CategoryNode, depth int) {
	for _, node := range nodes {
		description := ""
		if node.Description != nil {
			description = " - " + *node.Description
		}
		fmt.Fprintf(a.out, "%4d  %s%s%s\n", node.ID, strings.Repeat("  ", depth), node.Name, description)
		a.printCategoryTree(node.Children, depth+1)
	}
}

// Categories prints the category tree.
func (a *App) Categories(ctx context.Context) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	forest, err := a.store.CategoryForest(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	if len(forest) == 0 {
		fmt.Fprintln(a.out, "No categories.")
		return nil
	}
	a.printCategoryTree(forest, 0)
	return nil
}

// promptCategory collects the fields of a category, keeping current values
// on empty input.
func (a *App) promptCategory(c *models.Category) error {
	name, err := GetSimpleText(a.reader, fmt.Sprintf("Name [%s]", c.Name), a.out)
	if err != nil {
		return err
	}
	if name != "" {
		c.Name = name
	}
	if c.Name == "" {
		return errors.New("name is required")
	}

	description, err := GetSimpleText(a.reader, fmt.Sprintf("Description [%s]", orEmpty(c.Description)), a.out)
	if err != nil {
		return err
	}
	if description != "" {
		c.Description = optional(description)
	}

	currentParent := ""
	if c.ParentID != nil {
		currentParent = strconv.FormatInt(*c.ParentID, 10)
	}
	parent, err := GetSimpleText(a.reader, fmt.Sprintf("Parent category id [%s]", currentParent), a.out)
	if err != nil {
		return err
	}
	if parent != "" {
		id, err := strconv.ParseInt(parent, 10, 64)
		if err != nil {
			return fmt.Errorf("%q is not a category id", parent)
		}
		c.ParentID = &id
	}

	icon, err := GetSimpleText(a.reader, fmt.Sprintf("Icon [%s]", orEmpty(c.Icon)), a.out)
	if err != nil {
		return err
	}
	if icon != "" {
		c.Icon = optional(icon)
	}

	return nil
}

// AddCategory creates a new category.
func (a *App) AddCategory(ctx context.Context) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}

	var c models.Category
	if err := a.promptCategory(&c); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	id, err := a.store.AddCategory(ctx, &c)
	if err != nil {
		a.log.Error(ctx, "failed to add category", "error", err)
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Category %d added.\n", id)
	return nil
}

// EditCategory re-prompts the fields of a category.
func (a *App) EditCategory(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	id, ok := a.parseID(args, "editcat <id>")
	if !ok {
		return nil
	}

	c, err := a.store.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No category with id %d.\n", id)
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.promptCategory(c); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if err := a.store.UpdateCategory(ctx, c); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Category %d updated.\n", id)
	return nil
}

// DeleteCategory removes a category after confirmation. Entries in the
// category and child categories are kept and detached.
func (a *App) DeleteCategory(ctx context.Context, args []string) error {
	if !a.requireUnlocked() {
		return common.ErrorVaultLocked
	}
	id, ok := a.parseID(args, "delcat <id>")
	if !ok {
		return nil
	}

	confirmed, err := GetConfirmation(a.reader, fmt.Sprintf("Delete category %d? Entries are kept without a category.", id), a.out)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Nothing deleted.")
		return nil
	}

	if err := a.store.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "No category with id %d.\n", id)
			return err
		}
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Category %d deleted.\n", id)
	return nil
}
