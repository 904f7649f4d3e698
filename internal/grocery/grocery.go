// Package grocery derives shopping carts from meal plans. Every
// operation is a pure transformation returning a new cart value.
package grocery

import (
	"net/url"
	"sort"
	"strings"

	"github.com/scar796/nutrio/internal/models"
)

// BuildFromPlan creates a cart with every distinct plan ingredient
// present and selected.
func BuildFromPlan(userID int64, plan models.MealPlan) models.Cart {
	cart := models.NewCart(userID)
	for _, ingredient := range plan.Ingredients() {
		cart.Items[ingredient] = models.CartItem{Ingredient: ingredient, Selected: true}
	}
	return cart
}

// Merge refreshes a cart against a new plan: plan ingredients are
// (re)added as auto entries, manual entries survive, and stale auto
// entries from an older plan are dropped. A manually added item is
// independent of an identical plan ingredient and is never removed here.
func Merge(existing models.Cart, plan models.MealPlan) models.Cart {
	merged := models.NewCart(existing.UserID)
	planIngredients := make(map[string]bool)
	for _, ingredient := range plan.Ingredients() {
		planIngredients[ingredient] = true
	}

	for name, item := range existing.Items {
		if item.Manual || planIngredients[name] {
			merged.Items[name] = item
		}
	}
	for ingredient := range planIngredients {
		if _, ok := merged.Items[ingredient]; !ok {
			merged.Items[ingredient] = models.CartItem{Ingredient: ingredient, Selected: true}
		}
	}
	return merged
}

// Toggle flips an item's selected state. Toggling an absent ingredient
// re-adds it as a selected manual entry.
func Toggle(cart models.Cart, ingredient string) models.Cart {
	next := clone(cart)
	if item, ok := next.Items[ingredient]; ok {
		item.Selected = !item.Selected
		next.Items[ingredient] = item
		return next
	}
	next.Items[ingredient] = models.CartItem{Ingredient: ingredient, Selected: true, Manual: true}
	return next
}

// Add inserts a manual, selected entry. Adding an existing ingredient
// selects it and marks it manual.
func Add(cart models.Cart, ingredient string) models.Cart {
	next := clone(cart)
	next.Items[ingredient] = models.CartItem{Ingredient: ingredient, Selected: true, Manual: true}
	return next
}

// Remove deletes the entry entirely.
func Remove(cart models.Cart, ingredient string) models.Cart {
	next := clone(cart)
	delete(next.Items, ingredient)
	return next
}

// SelectedItems returns the selected ingredient names, sorted.
func SelectedItems(cart models.Cart) []string {
	var selected []string
	for name, item := range cart.Items {
		if item.Selected {
			selected = append(selected, name)
		}
	}
	sort.Strings(selected)
	return selected
}

// Ingredients returns every cart key, sorted, for rendering the full
// toggle keyboard.
func Ingredients(cart models.Cart) []string {
	names := make([]string, 0, len(cart.Items))
	for name := range cart.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type DeliveryLink struct {
	Service string
	URL     string
}

// DeliveryLinks builds search links for the external delivery services
// from the first few selected items. The URLs are opaque to the rest of
// the system.
func DeliveryLinks(items []string) []DeliveryLink {
	limited := items
	if len(limited) > 5 {
		limited = limited[:5]
	}
	query := url.QueryEscape(strings.Join(limited, " "))
	return []DeliveryLink{
		{Service: "Zepto", URL: "https://www.zepto.com/search?q=" + query},
		{Service: "Blinkit", URL: "https://www.blinkit.com/s/?q=" + query},
	}
}

func clone(cart models.Cart) models.Cart {
	next := models.NewCart(cart.UserID)
	for name, item := range cart.Items {
		next.Items[name] = item
	}
	return next
}
