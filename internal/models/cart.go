package models

// CartItem est un instantané du produit au moment de l'ajout : le prix, le
// stock et l'image peuvent diverger de la fiche produit par la suite.
type CartItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Stock     int     `json:"stock"`
	Image     string  `json:"image"`
}

// AddItem fusionne un item dans le panier. La quantité résultante est
// plafonnée au stock connu du produit.
func AddItem(cart []CartItem, item CartItem) []CartItem {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range cart {
		if cart[i].ProductID == item.ProductID {
			cart[i].Quantity = clampQuantity(cart[i].Quantity+item.Quantity, item.Stock)
			// rafraîchit l'instantané avec les données actuelles
			cart[i].Title = item.Title
			cart[i].Price = item.Price
			cart[i].Stock = item.Stock
			cart[i].Image = item.Image
			return cart
		}
	}
	item.Quantity = clampQuantity(item.Quantity, item.Stock)
	return append(cart, item)
}

// SetQuantity fixe la quantité d'une ligne, bornée à [1, stock].
func SetQuantity(cart []CartItem, productID string, quantity int) []CartItem {
	for i := range cart {
		if cart[i].ProductID == productID {
			if quantity < 1 {
				quantity = 1
			}
			cart[i].Quantity = clampQuantity(quantity, cart[i].Stock)
			break
		}
	}
	return cart
}

// RemoveItem supprime une ligne du panier.
func RemoveItem(cart []CartItem, productID string) []CartItem {
	out := make([]CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// CartTotal calcule le total du panier.
func CartTotal(cart []CartItem) float64 {
	total := 0.0
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func clampQuantity(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
