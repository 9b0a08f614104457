package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumio_back_end/internal/models"
)

// fakeProducts sert de catalogue en mémoire pour les tests de validation.
type fakeProducts map[string]models.Product

func (f fakeProducts) FetchProduct(_ context.Context, productID string) (models.Product, error) {
	product, ok := f[productID]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

func cartLine(id, title string, price float64, qty int) models.CartItem {
	return models.CartItem{ProductID: id, Title: title, Price: price, Quantity: qty}
}

func TestValidateStockOK(t *testing.T) {
	catalog := fakeProducts{
		"p1": {ID: "p1", Title: "Clavier", Price: 10, Stock: 5},
	}
	items := []models.CartItem{cartLine("p1", "Clavier", 10, 2)}

	err := ValidateStock(context.Background(), items, catalog)
	assert.NoError(t, err)
}

func TestValidateStockInsufficient(t *testing.T) {
	catalog := fakeProducts{
		"p2": {ID: "p2", Title: "Souris", Price: 5, Stock: 1},
	}
	items := []models.CartItem{cartLine("p2", "Souris", 5, 3)}

	err := ValidateStock(context.Background(), items, catalog)
	require.Error(t, err)

	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Souris", stockErr.Item)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
}

func TestValidateStockFirstErrorAborts(t *testing.T) {
	catalog := fakeProducts{
		"p1": {ID: "p1", Title: "Clavier", Price: 10, Stock: 5},
		"p2": {ID: "p2", Title: "Souris", Price: 5, Stock: 1},
	}
	items := []models.CartItem{
		cartLine("p1", "Clavier", 10, 2),
		cartLine("p2", "Souris", 5, 3),
		cartLine("p3", "Écran", 99, 1),
	}

	err := ValidateStock(context.Background(), items, catalog)

	// la souris échoue avant que l'écran manquant ne soit consulté
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Souris", stockErr.Item)
}

func TestValidateStockProductGone(t *testing.T) {
	catalog := fakeProducts{}
	items := []models.CartItem{cartLine("p9", "Fantôme", 10, 1)}

	err := ValidateStock(context.Background(), items, catalog)
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Fantôme", notFound.Item)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

// downProducts simule un magasin de documents injoignable.
type downProducts struct{ err error }

func (d downProducts) FetchProduct(_ context.Context, _ string) (models.Product, error) {
	return models.Product{}, d.err
}

func TestValidateStockTransientErrorIsNotNotFound(t *testing.T) {
	errDown := errors.New("connexion perdue")
	items := []models.CartItem{cartLine("p1", "Clavier", 10, 1)}

	err := ValidateStock(context.Background(), items, downProducts{err: errDown})
	require.Error(t, err)

	// un produit injoignable ne doit pas passer pour un produit disparu
	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound))
	assert.ErrorIs(t, err, errDown)
}

func TestValidateStockEmptyCart(t *testing.T) {
	err := ValidateStock(context.Background(), nil, fakeProducts{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestValidateStockZeroQuantityCountsAsOne(t *testing.T) {
	catalog := fakeProducts{
		"p1": {ID: "p1", Title: "Clavier", Stock: 0},
	}
	items := []models.CartItem{cartLine("p1", "Clavier", 10, 0)}

	err := ValidateStock(context.Background(), items, catalog)

	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Requested)
}

// fakeStock est un StockStore en mémoire avec pannes injectables.
type fakeStock struct {
	products  map[string]models.Product
	failFetch map[string]error
	failWrite map[string]error
}

func (f *fakeStock) FetchProduct(_ context.Context, productID string) (models.Product, error) {
	if err, ok := f.failFetch[productID]; ok {
		return models.Product{}, err
	}
	product, ok := f.products[productID]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (f *fakeStock) SetStock(_ context.Context, productID string, stock int) error {
	if err, ok := f.failWrite[productID]; ok {
		return err
	}
	product := f.products[productID]
	product.Stock = stock
	f.products[productID] = product
	return nil
}

func TestApplyStockDecrementsOK(t *testing.T) {
	store := &fakeStock{products: map[string]models.Product{
		"p1": {ID: "p1", Title: "Clavier", Stock: 5},
		"p2": {ID: "p2", Title: "Souris", Stock: 3},
	}}
	items := []models.CartItem{
		cartLine("p1", "Clavier", 10, 2),
		cartLine("p2", "Souris", 5, 3),
	}

	touched, err := ApplyStockDecrements(context.Background(), items, store)
	require.NoError(t, err)

	assert.Equal(t, 3, store.products["p1"].Stock)
	assert.Equal(t, 0, store.products["p2"].Stock)

	// les produits retournés portent le nouveau stock, pour la réindexation
	require.Len(t, touched, 2)
	assert.Equal(t, "p1", touched[0].ID)
	assert.Equal(t, 3, touched[0].Stock)
	assert.Equal(t, 0, touched[1].Stock)
}

func TestApplyStockDecrementsFetchFailureAborts(t *testing.T) {
	errDown := errors.New("connexion perdue")
	store := &fakeStock{
		products: map[string]models.Product{
			"p1": {ID: "p1", Title: "Clavier", Stock: 5},
			"p2": {ID: "p2", Title: "Souris", Stock: 3},
			"p3": {ID: "p3", Title: "Écran", Stock: 2},
		},
		failFetch: map[string]error{"p2": errDown},
	}
	items := []models.CartItem{
		cartLine("p1", "Clavier", 10, 2),
		cartLine("p2", "Souris", 5, 1),
		cartLine("p3", "Écran", 99, 1),
	}

	touched, err := ApplyStockDecrements(context.Background(), items, store)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDown)

	// le décrément déjà appliqué est conservé, la suite n'est pas touchée
	assert.Equal(t, 3, store.products["p1"].Stock)
	assert.Equal(t, 3, store.products["p2"].Stock)
	assert.Equal(t, 2, store.products["p3"].Stock)
	require.Len(t, touched, 1)
	assert.Equal(t, "p1", touched[0].ID)
}

func TestApplyStockDecrementsWriteFailureAborts(t *testing.T) {
	errDown := errors.New("écriture refusée")
	store := &fakeStock{
		products: map[string]models.Product{
			"p1": {ID: "p1", Title: "Clavier", Stock: 5},
			"p2": {ID: "p2", Title: "Souris", Stock: 3},
		},
		failWrite: map[string]error{"p2": errDown},
	}
	items := []models.CartItem{
		cartLine("p1", "Clavier", 10, 2),
		cartLine("p2", "Souris", 5, 1),
	}

	touched, err := ApplyStockDecrements(context.Background(), items, store)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDown)

	assert.Equal(t, 3, store.products["p1"].Stock)
	assert.Equal(t, 3, store.products["p2"].Stock)
	require.Len(t, touched, 1)
}

func TestDecrementedStock(t *testing.T) {
	assert.Equal(t, 3, DecrementedStock(5, 2))
	assert.Equal(t, 0, DecrementedStock(2, 2))
	// jamais négatif, même en cas de survente concurrente
	assert.Equal(t, 0, DecrementedStock(1, 3))
}

func TestBuildOrder(t *testing.T) {
	items := []models.CartItem{
		cartLine("p1", "Clavier", 10, 2),
		cartLine("p2", "Souris", 5, 3),
	}

	order := BuildOrder("user-1", items, "1 rue de la Paix, Paris, France", "75001", "cash")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 35.0, order.TotalPrice, 1e-9)
	assert.Equal(t, "1 rue de la Paix, Paris, France", order.Address)
	assert.Equal(t, "75001", order.PostalCode)
	assert.Equal(t, "cash", order.PaymentMethod)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Clavier", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 10.0, order.Items[0].Price, 1e-9)
}

func TestBuildOrderTotalFromSnapshotPrices(t *testing.T) {
	// Le total est recalculé sur les prix d'instantané du panier, pas sur la
	// fiche produit courante.
	items := []models.CartItem{cartLine("p1", "Clavier", 8.5, 2)}

	order := BuildOrder("user-1", items, "adresse", "1000", "credit")
	assert.InDelta(t, 17.0, order.TotalPrice, 1e-9)
}

func TestBuildOrderUniqueIDs(t *testing.T) {
	a := BuildOrder("u", nil, "", "", "cash")
	b := BuildOrder("u", nil, "", "", "cash")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStockErrorMessage(t *testing.T) {
	err := &StockError{Item: "Souris", Available: 1, Requested: 3}
	assert.Equal(t, "stock insuffisant pour Souris (disponible: 1, demandé: 3)", err.Error())
	assert.False(t, errors.Is(err, ErrProductNotFound))
}
