// internal/appstate/state.go
package appstate

import (
	"github.com/javajoker/jewelry-atelier/internal/models"
)

// State is an immutable snapshot. Mutations build new slices, so a State
// returned to a caller never changes underneath it.
type State struct {
	Theme           models.Theme            `json:"theme"`
	User            *models.User            `json:"user"`
	Designs         []models.Design         `json:"designs"`
	Cart            []models.CartItem       `json:"cart"`
	Filters         models.FilterOptions    `json:"filters"`
	GalleryImages   []models.GalleryImage   `json:"galleryImages"`
	GeneratedImages []models.GeneratedImage `json:"generatedImages"`
	IsLoading       bool                    `json:"isLoading"`
	IsGenerating    bool                    `json:"isGenerating"`
}

func initialState() State {
	return State{
		Theme:           models.ThemeLight,
		Designs:         []models.Design{},
		Cart:            []models.CartItem{},
		GalleryImages:   []models.GalleryImage{},
		GeneratedImages: []models.GeneratedImage{},
	}
}

// CartItem returns the cart line for designID.
func (s State) CartItem(designID string) (models.CartItem, bool) {
	for _, item := range s.Cart {
		if item.Design.ID == designID {
			return item, true
		}
	}
	return models.CartItem{}, false
}

func (s State) Design(id string) (models.Design, bool) {
	for _, d := range s.Designs {
		if d.ID == id {
			return d, true
		}
	}
	return models.Design{}, false
}

func (s State) CartCount() int {
	n := 0
	for _, item := range s.Cart {
		n += item.Quantity
	}
	return n
}

// Each reducer returns the next state and must not modify its input slices.

func toggleTheme(s State) State {
	if s.Theme == models.ThemeDark {
		s.Theme = models.ThemeLight
	} else {
		s.Theme = models.ThemeDark
	}
	return s
}

func setUser(user *models.User) func(State) State {
	return func(s State) State {
		if user != nil {
			u := *user
			user = &u
		}
		s.User = user
		return s
	}
}

func addDesign(design models.Design) func(State) State {
	return func(s State) State {
		s.Designs = prepend(s.Designs, design)
		return s
	}
}

func removeDesign(id string) func(State) State {
	return func(s State) State {
		s.Designs = without(s.Designs, func(d models.Design) bool { return d.ID == id })
		return s
	}
}

func toggleFavorite(id string) func(State) State {
	return func(s State) State {
		designs := make([]models.Design, len(s.Designs))
		for i, d := range s.Designs {
			if d.ID == id {
				d.IsFavorite = !d.IsFavorite
			}
			designs[i] = d
		}
		s.Designs = designs
		return s
	}
}

// addToCart increments an existing line for the same design and appends
// otherwise. Quantities below 1 count as 1.
func addToCart(item models.CartItem) func(State) State {
	return func(s State) State {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		cart := make([]models.CartItem, 0, len(s.Cart)+1)
		found := false
		for _, existing := range s.Cart {
			if existing.Design.ID == item.Design.ID {
				existing.Quantity += item.Quantity
				found = true
			}
			cart = append(cart, existing)
		}
		if !found {
			cart = append(cart, item)
		}
		s.Cart = cart
		return s
	}
}

func removeFromCart(designID string) func(State) State {
	return func(s State) State {
		s.Cart = without(s.Cart, func(item models.CartItem) bool { return item.Design.ID == designID })
		return s
	}
}

// updateCartQuantity drops the line when quantity is below 1.
func updateCartQuantity(designID string, quantity int) func(State) State {
	return func(s State) State {
		if quantity < 1 {
			return removeFromCart(designID)(s)
		}
		cart := make([]models.CartItem, len(s.Cart))
		for i, item := range s.Cart {
			if item.Design.ID == designID {
				item.Quantity = quantity
			}
			cart[i] = item
		}
		s.Cart = cart
		return s
	}
}

// removeCartLines subtracts each settled line's quantity from the current
// cart. Lines or quantity added after the settled snapshot stay.
func removeCartLines(settled []models.CartItem) func(State) State {
	return func(s State) State {
		paid := make(map[string]int, len(settled))
		for _, item := range settled {
			paid[item.Design.ID] += item.Quantity
		}

		cart := make([]models.CartItem, 0, len(s.Cart))
		for _, item := range s.Cart {
			item.Quantity -= paid[item.Design.ID]
			if item.Quantity > 0 {
				cart = append(cart, item)
			}
		}
		s.Cart = cart
		return s
	}
}

func clearCart(s State) State {
	s.Cart = []models.CartItem{}
	return s
}

func setFilters(filters models.FilterOptions) func(State) State {
	return func(s State) State {
		s.Filters = copyFilters(filters)
		return s
	}
}

func setGalleryImages(images []models.GalleryImage) func(State) State {
	return func(s State) State {
		s.GalleryImages = append([]models.GalleryImage{}, images...)
		return s
	}
}

func addGalleryImage(image models.GalleryImage) func(State) State {
	return func(s State) State {
		images := make([]models.GalleryImage, 0, len(s.GalleryImages)+1)
		s.GalleryImages = append(append(images, s.GalleryImages...), image)
		return s
	}
}

func addGeneratedImage(image models.GeneratedImage) func(State) State {
	return func(s State) State {
		s.GeneratedImages = prepend(s.GeneratedImages, image)
		return s
	}
}

func removeGeneratedImage(id string) func(State) State {
	return func(s State) State {
		s.GeneratedImages = without(s.GeneratedImages, func(img models.GeneratedImage) bool { return img.ID == id })
		return s
	}
}

func clearGeneratedImages(s State) State {
	s.GeneratedImages = []models.GeneratedImage{}
	return s
}

func setIsLoading(v bool) func(State) State {
	return func(s State) State {
		s.IsLoading = v
		return s
	}
}

func setIsGenerating(v bool) func(State) State {
	return func(s State) State {
		s.IsGenerating = v
		return s
	}
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}

func without[T any](list []T, drop func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}

func copyFilters(f models.FilterOptions) models.FilterOptions {
	out := models.FilterOptions{
		Type:     append([]models.JewelryType(nil), f.Type...),
		Material: append([]models.Material(nil), f.Material...),
		Gemstone: append([]models.Gemstone(nil), f.Gemstone...),
		SortBy:   f.SortBy,
	}
	if f.PriceRange != nil {
		r := *f.PriceRange
		out.PriceRange = &r
	}
	return out
}
