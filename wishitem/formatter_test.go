package wishitem_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tmori/wishkeeper/internal/utils"
	"github.com/tmori/wishkeeper/wishitem"
)

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "", wishitem.FormatPrice(nil, wishitem.CurrencyJPY))
	require.Equal(t, "", wishitem.FormatPrice(utils.Ptr(0.0), wishitem.CurrencyJPY))

	require.Equal(t, "￥1,234", wishitem.FormatPrice(utils.Ptr(1234.0), wishitem.CurrencyJPY))
	require.Equal(t, "￥12,345,678", wishitem.FormatPrice(utils.Ptr(12345678.0), wishitem.CurrencyJPY))
	require.Equal(t, "$1,234.56", wishitem.FormatPrice(utils.Ptr(1234.56), wishitem.CurrencyUSD))
	require.Equal(t, "$19.99", wishitem.FormatPrice(utils.Ptr(19.99), wishitem.CurrencyUSD))
	require.Equal(t, "EUR 99.50", wishitem.FormatPrice(utils.Ptr(99.5), wishitem.Currency("EUR")))

	// Empty currency defaults to JPY.
	require.Equal(t, "￥500", wishitem.FormatPrice(utils.Ptr(500.0), ""))
}

func TestPriorityLabels(t *testing.T) {
	require.Equal(t, "高", wishitem.PriorityLabel(wishitem.PriorityHigh))
	require.Equal(t, "中", wishitem.PriorityLabel(wishitem.PriorityMiddle))
	require.Equal(t, "低", wishitem.PriorityLabel(wishitem.PriorityLow))
	require.Equal(t, "未設定", wishitem.PriorityLabel(""))
}

func TestStatusLabels(t *testing.T) {
	require.Equal(t, "購入済み", wishitem.StatusLabel(wishitem.StatusPurchased))
	require.Equal(t, "未購入", wishitem.StatusLabel(wishitem.StatusUnpurchased))
	require.Equal(t, "未設定", wishitem.StatusLabel(""))
}

func TestPriorityClass(t *testing.T) {
	require.Equal(t, "badge-error", wishitem.PriorityClass(wishitem.PriorityHigh))
	require.Equal(t, "badge-ghost", wishitem.PriorityClass(""))
}

func TestNewItemDefaults(t *testing.T) {
	item := wishitem.New("auth0|user-1", "Camera")
	require.NotEmpty(t, item.ID)
	require.Equal(t, wishitem.StatusUnpurchased, item.Status)
	require.Equal(t, wishitem.PriorityMiddle, item.Priority)
	require.Equal(t, wishitem.CurrencyJPY, item.Currency)
}

func TestMarkPurchasedAndBack(t *testing.T) {
	item := wishitem.New("auth0|user-1", "Camera")

	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	item.MarkPurchased(date, utils.Ptr(79800.0), "Yodobashi Akiba")

	require.Equal(t, wishitem.StatusPurchased, item.Status)
	require.Equal(t, date, *item.PurchaseDate)
	require.Equal(t, 79800.0, *item.PurchasePrice)

	item.MarkUnpurchased()
	require.Equal(t, wishitem.StatusUnpurchased, item.Status)
	require.Nil(t, item.PurchaseDate)
	require.Nil(t, item.PurchasePrice)
	require.Empty(t, item.PurchaseLocation)
}
