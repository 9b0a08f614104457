package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumio_back_end/internal/services"
)

//
// 🔍 GET /api/products/search?q=&category=
//
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")

	if query == "" && category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' ou 'category' requis"})
		return
	}

	results, err := services.SearchProducts(query, category)
	if err != nil {
		// Une recherche en échec dégrade en liste vide plutôt qu'en erreur
		c.JSON(http.StatusOK, []interface{}{})
		return
	}

	c.JSON(http.StatusOK, results)
}
