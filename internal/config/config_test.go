package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"API_BASE_URL":      "http://localhost:8080/api",
		"API_TIMEOUT":       "",
		"FREE_SHIPPING_MIN": "",
		"SHIPPING_FLAT_FEE": "",
	})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.APITimeout)
	require.Equal(t, int64(3000), cfg.FreeShippingMin)
	require.Equal(t, int64(250), cfg.ShippingFlatFee)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRequiresBaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{"API_BASE_URL": ""})
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"API_BASE_URL":      "http://shop.test/api",
		"FREE_SHIPPING_MIN": "5000",
		"SHIPPING_FLAT_FEE": "400",
		"API_TIMEOUT":       "3s",
	})
	require.NoError(t, err)
	require.Equal(t, int64(5000), cfg.FreeShippingMin)
	require.Equal(t, int64(400), cfg.ShippingFlatFee)
	require.Equal(t, 3*time.Second, cfg.APITimeout)
}

func TestLoadRejectsNegativeFees(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"API_BASE_URL":      "http://shop.test/api",
		"SHIPPING_FLAT_FEE": "-1",
	})
	require.Error(t, err)
}
