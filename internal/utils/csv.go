package utils

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"lumio_back_end/internal/models"
)

// OrdersCSV sérialise la liste de commandes en CSV (RFC 4180) : une ligne
// d'en-tête User,Status,Total,Date puis une ligne par commande, dans l'ordre
// d'entrée. Les champs contenant virgules ou guillemets sont échappés par
// l'encodeur.
func OrdersCSV(orders []models.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"User", "Status", "Total", "Date"}); err != nil {
		return nil, err
	}

	for _, o := range orders {
		username := o.Username
		if username == "" {
			username = "Unknown"
		}
		status := o.Status
		if status == "" {
			status = models.OrderStatusPending
		}
		row := []string{
			username,
			status,
			fmt.Sprintf("%.2f", o.TotalPrice),
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
