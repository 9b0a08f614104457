package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumio_back_end/internal/models"
)

func TestOrdersCSVHeaderOnly(t *testing.T) {
	data, err := OrdersCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "User,Status,Total,Date\n", string(data))
}

func TestOrdersCSVRows(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	orders := []models.Order{
		{Username: "alice", Status: "shipped", TotalPrice: 20, CreatedAt: created},
		{Username: "bob", Status: "pending", TotalPrice: 9.5, CreatedAt: created},
	}

	data, err := OrdersCSV(orders)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "User,Status,Total,Date", lines[0])
	assert.Equal(t, "alice,shipped,20.00,2025-03-14 09:30:00", lines[1])
	assert.Equal(t, "bob,pending,9.50,2025-03-14 09:30:00", lines[2])
}

func TestOrdersCSVDefaults(t *testing.T) {
	orders := []models.Order{{TotalPrice: 0, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}}

	data, err := OrdersCSV(orders)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Unknown,pending,0.00,2025-01-01 00:00:00", lines[1])
}

func TestOrdersCSVEscapesSpecialCharacters(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{Username: `Dupont, "Jean"`, Status: "cancelled", TotalPrice: 15, CreatedAt: created},
	}

	data, err := OrdersCSV(orders)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	// champ cité, guillemets doublés
	assert.Equal(t, `"Dupont, ""Jean""",cancelled,15.00,2025-06-01 12:00:00`, lines[1])
}

func TestOrdersCSVPreservesInputOrder(t *testing.T) {
	created := time.Now()
	orders := []models.Order{
		{Username: "c", CreatedAt: created},
		{Username: "a", CreatedAt: created},
		{Username: "b", CreatedAt: created},
	}

	data, err := OrdersCSV(orders)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "c,"))
	assert.True(t, strings.HasPrefix(lines[2], "a,"))
	assert.True(t, strings.HasPrefix(lines[3], "b,"))
}
