package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lumio_back_end/internal/models"
)

// ProductFetcher abstrait la lecture d'une fiche produit pendant le checkout.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, productID string) (models.Product, error)
}

// ErrProductNotFound est renvoyée quand un produit du panier n'existe plus.
var ErrProductNotFound = errors.New("produit introuvable")

// ErrEmptyCart est renvoyée quand le panier est vide.
var ErrEmptyCart = errors.New("panier vide")

// NotFoundError identifie l'item du panier dont le produit a disparu.
type NotFoundError struct {
	Item string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s introuvable", e.Item)
}

func (e *NotFoundError) Unwrap() error { return ErrProductNotFound }

// StockError identifie l'item dont la quantité dépasse le stock courant.
type StockError struct {
	Item      string
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s (disponible: %d, demandé: %d)",
		e.Item, e.Available, e.Requested)
}

// ValidateStock vérifie chaque item du panier contre le stock courant. La
// première erreur fait échouer la commande entière : aucune écriture n'a eu
// lieu à ce stade, le panier reste intact. Une erreur de lecture qui n'est
// pas ErrProductNotFound remonte telle quelle : un produit injoignable n'est
// pas un produit disparu.
func ValidateStock(ctx context.Context, items []models.CartItem, products ProductFetcher) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}

	for _, item := range items {
		product, err := products.FetchProduct(ctx, item.ProductID)
		if errors.Is(err, ErrProductNotFound) {
			return &NotFoundError{Item: item.Title}
		}
		if err != nil {
			return fmt.Errorf("lecture produit %s: %w", item.ProductID, err)
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty > product.Stock {
			return &StockError{
				Item:      item.Title,
				Available: product.Stock,
				Requested: qty,
			}
		}
	}
	return nil
}

// StockStore étend ProductFetcher avec l'écriture du stock.
type StockStore interface {
	ProductFetcher
	SetStock(ctx context.Context, productID string, stock int) error
}

// ApplyStockDecrements décrémente le stock de chaque produit du panier,
// borné à zéro. La première erreur de lecture ou d'écriture interrompt la
// phase : les décréments déjà appliqués sont conservés (pas de compensation),
// les produits restants ne sont pas touchés. Retourne les produits modifiés
// avec leur nouveau stock.
func ApplyStockDecrements(ctx context.Context, items []models.CartItem, store StockStore) ([]models.Product, error) {
	touched := make([]models.Product, 0, len(items))
	for _, item := range items {
		product, err := store.FetchProduct(ctx, item.ProductID)
		if err != nil {
			return touched, fmt.Errorf("lecture produit %s: %w", item.ProductID, err)
		}
		product.Stock = DecrementedStock(product.Stock, item.Quantity)
		if err := store.SetStock(ctx, item.ProductID, product.Stock); err != nil {
			return touched, fmt.Errorf("écriture stock %s: %w", item.ProductID, err)
		}
		touched = append(touched, product)
	}
	return touched, nil
}

// DecrementedStock calcule le stock après achat, borné à zéro. Le stock ne
// devient jamais négatif, mais deux checkouts concurrents peuvent tous deux
// passer la validation et décrémenter : la survente est possible (pas de
// transaction côté magasin de documents).
func DecrementedStock(current, quantity int) int {
	next := current - quantity
	if next < 0 {
		return 0
	}
	return next
}

// BuildOrder construit le document commande à partir des instantanés du
// panier. Le total est recalculé sur les prix d'instantané.
func BuildOrder(userID string, items []models.CartItem, address, postalCode, paymentMethod string) models.Order {
	orderItems := make([]models.OrderItem, 0, len(items))
	total := 0.0
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Title,
			Price:     item.Price,
			Quantity:  qty,
			Image:     item.Image,
		})
		total += item.Price * float64(qty)
	}

	return models.Order{
		ID:            primitive.NewObjectID().Hex(),
		UserID:        userID,
		Items:         orderItems,
		TotalPrice:    total,
		Address:       address,
		PostalCode:    postalCode,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
}
