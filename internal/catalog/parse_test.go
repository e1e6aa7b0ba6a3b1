package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrands(t *testing.T) {
	t.Run("Success - BOM Header Stripped", func(t *testing.T) {
		// Arrange
		csvText := "\ufeffkey,name,status,product_csv_url\n" +
			"koyamaen,丸久小山園,available,https://example.com/koyamaen.csv\n" +
			"hoshino,星野製茶園,out-of-stock,https://example.com/hoshino.csv\n"

		// Act
		brands, err := ParseBrands(csvText)

		// Assert
		require.NoError(t, err)
		require.Len(t, brands, 2)
		assert.Equal(t, "koyamaen", brands[0].Key)
		assert.True(t, brands[0].Available())
		assert.False(t, brands[1].Available())
	})

	t.Run("Failure - Missing Required Column", func(t *testing.T) {
		// Arrange
		csvText := "key,name,status\nkoyamaen,丸久小山園,available\n"

		// Act
		_, err := ParseBrands(csvText)

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "product_csv_url")
	})

	t.Run("Rows Without A Key Are Skipped", func(t *testing.T) {
		// Arrange
		csvText := "key,name,status,product_csv_url\n,ghost,available,\nkoyamaen,丸久小山園,available,u\n"

		// Act
		brands, err := ParseBrands(csvText)

		// Assert
		require.NoError(t, err)
		assert.Len(t, brands, 1)
	})

	t.Run("Empty Sheet Yields No Brands", func(t *testing.T) {
		brands, err := ParseBrands("key,name,status,product_csv_url\n")

		require.NoError(t, err)
		assert.Empty(t, brands)
	})
}

func TestParseProducts(t *testing.T) {
	t.Run("Success - Numeric Defaults And Quoted Commas", func(t *testing.T) {
		// Arrange
		csvText := "product_name,price,price_multi,status,hidden,max_limit,stock,subcategory,specs\n" +
			"\"和光, 40g\",\"1,200\",980,available,,3,,koyamaen,40g罐裝|賞味期限半年\n" +
			"初昔 40g,800,,available,,,,koyamaen,\n"

		// Act
		products, err := ParseProducts(csvText)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 2)

		wako := products[0]
		assert.Equal(t, "和光, 40g", wako.Name)
		assert.Equal(t, 1200, wako.UnitPrice)
		assert.Equal(t, 980, wako.MultiUnitPrice)
		assert.Equal(t, 3, wako.MaxPerCustomer)
		assert.Equal(t, DefaultStock, wako.Stock)
		assert.Equal(t, []string{"40g罐裝", "賞味期限半年"}, wako.Specs)

		hatsu := products[1]
		assert.Zero(t, hatsu.MultiUnitPrice)
		assert.Equal(t, 99, hatsu.MaxPerCustomer)
	})

	t.Run("Hidden Rows Are Dropped", func(t *testing.T) {
		// Arrange
		csvText := "product_name,price,price_multi,status,hidden\n" +
			"visible,100,,available,\n" +
			"flagged,100,,available,TRUE\n" +
			"status-hidden,100,,hidden,\n"

		// Act
		products, err := ParseProducts(csvText)

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "visible", products[0].Name)
	})

	t.Run("Unparseable Price Defaults To Zero", func(t *testing.T) {
		// Arrange
		csvText := "product_name,price,price_multi,status\nweird,請洽詢,,available\n"

		// Act
		products, err := ParseProducts(csvText)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, products[0].UnitPrice)
	})
}

func TestParseSettings(t *testing.T) {
	// Arrange
	csvText := "key,value\nannouncement,雙十連假照常出貨\ncontact_line_id,@keicha\n,ignored\n"

	// Act
	settings, err := ParseSettings(csvText)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "雙十連假照常出貨", settings["announcement"])
	assert.Equal(t, "@keicha", settings["contact_line_id"])
	assert.Len(t, settings, 2)
}

func TestParseShippingRules(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		csvText := "method,category,t1,f1,t2,f2,t3,f3\n7-11,tea,500,100,1000,60,1500,30\n"

		// Act
		rules, err := ParseShippingRules(csvText)

		// Assert
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, "7-11", rules[0].Method)
		assert.Equal(t, 1500, rules[0].T3)
		assert.Equal(t, 30, rules[0].F3)
	})

	t.Run("Failure - Missing Tier Column", func(t *testing.T) {
		_, err := ParseShippingRules("method,category,t1,f1\n7-11,tea,500,100\n")

		assert.Error(t, err)
	})
}
