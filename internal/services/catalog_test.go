// internal/services/catalog_test.go
package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/database"
	"github.com/javajoker/jewelry-atelier/internal/models"
)

func TestQuotePrice(t *testing.T) {
	cases := []struct {
		material models.Material
		gemstone models.Gemstone
		want     float64
	}{
		{models.MaterialGold, models.GemstoneNone, 1000},
		{models.MaterialSilver, models.GemstoneNone, 500},
		{models.MaterialGold, models.GemstoneDiamond, 4000},
		{models.MaterialPlatinum, models.GemstoneRuby, 4500},
		{models.MaterialRoseGold, models.GemstoneSapphire, 3520},
		{"unobtainium", "", 1000},
	}
	for _, tc := range cases {
		t.Run(string(tc.material)+"/"+string(tc.gemstone), func(t *testing.T) {
			assert.Equal(t, tc.want, QuotePrice(tc.material, tc.gemstone).Price)
		})
	}
}

func TestFilterDesigns(t *testing.T) {
	now := time.Now()
	designs := []models.Design{
		{ID: "a", Type: models.JewelryTypeRing, Material: models.MaterialGold, Gemstone: models.GemstoneDiamond, Price: 300, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "b", Type: models.JewelryTypeNecklace, Material: models.MaterialSilver, Gemstone: models.GemstoneNone, Price: 100, CreatedAt: now},
		{ID: "c", Type: models.JewelryTypeRing, Material: models.MaterialSilver, Gemstone: models.GemstoneRuby, Price: 200, CreatedAt: now.Add(-time.Hour)},
	}

	assert.Equal(t, designs, FilterDesigns(designs, models.FilterOptions{}))

	rings := FilterDesigns(designs, models.FilterOptions{Type: []models.JewelryType{models.JewelryTypeRing}})
	assert.Equal(t, []string{"a", "c"}, ids(rings))

	silverAsc := FilterDesigns(designs, models.FilterOptions{Material: []models.Material{models.MaterialSilver}, SortBy: models.SortByPriceAsc})
	assert.Equal(t, []string{"b", "c"}, ids(silverAsc))

	ranged := FilterDesigns(designs, models.FilterOptions{PriceRange: &[2]float64{150, 300}, SortBy: models.SortByPriceDesc})
	assert.Equal(t, []string{"a", "c"}, ids(ranged))

	byDate := FilterDesigns(designs, models.FilterOptions{SortBy: models.SortByDate})
	assert.Equal(t, []string{"b", "c", "a"}, ids(byDate))

	popular := FilterDesigns(designs, models.FilterOptions{SortBy: models.SortByPopular})
	assert.Equal(t, []string{"a", "b", "c"}, ids(popular))

	gems := FilterDesigns(designs, models.FilterOptions{Gemstone: []models.Gemstone{models.GemstoneRuby, models.GemstoneNone}})
	assert.Equal(t, []string{"b", "c"}, ids(gems))
	assert.Equal(t, "a", designs[0].ID)
}

func ids(designs []models.Design) []string {
	out := make([]string, 0, len(designs))
	for _, d := range designs {
		out = append(out, d.ID)
	}
	return out
}

func newProductService(t *testing.T, storage *ImageStorageService) (*ProductService, database.ProductStore) {
	t.Helper()
	store := database.NewFileProductStore(filepath.Join(t.TempDir(), "products.json"))
	return NewProductService(store, storage, nil), store
}

func disabledStorage(t *testing.T) *ImageStorageService {
	t.Helper()
	cfg := testConfig()
	cfg.Cloudinary = config.CloudinaryConfig{}
	svc, err := NewImageStorageService(cfg, nil)
	require.NoError(t, err)
	return svc
}

func TestCreateProductDefaults(t *testing.T) {
	svc, store := newProductService(t, disabledStorage(t))
	price := 199.99

	product, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:     "Test Ring",
		Price:    &price,
		ImageURL: "https://example.com/img.jpg",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, 199.99, product.Price)
	assert.Equal(t, models.JewelryTypeRing, product.Type)
	assert.Equal(t, models.MaterialGold, product.Material)
	assert.Equal(t, models.GemstoneNone, product.Gemstone)
	assert.Equal(t, "https://example.com/img.jpg", product.ImageURL)
	assert.False(t, product.CreatedAt.IsZero())

	stored, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, product.ID, stored[0].ID)
}

func TestCreateProductRehostsImage(t *testing.T) {
	storage := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"public_id":"p","url":"http://res/p.png","secure_url":"https://res/p.png"}`))
	})
	svc, _ := newProductService(t, storage)
	price := 10.0

	product, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:        "Uploaded",
		Price:       &price,
		Base64Image: base64.StdEncoding.EncodeToString(pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res/p.png", product.ImageURL)
}

func TestCreateProductKeepsURLWhenHostingFails(t *testing.T) {
	storage := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	svc, _ := newProductService(t, storage)
	price := 10.0

	product, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:        "Fallback",
		Price:       &price,
		ImageURL:    "https://example.com/raw.jpg",
		Base64Image: "!!!",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/raw.jpg", product.ImageURL)
}

func TestCreateProductRemovesUploadWhenSaveFails(t *testing.T) {
	var destroyed string
	storage := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/destroy") {
			destroyed = r.FormValue("public_id")
			w.Write([]byte(`{"result":"ok"}`))
			return
		}
		w.Write([]byte(`{"public_id":"products/orphan","secure_url":"https://res/orphan.png"}`))
	})
	svc, store := newProductService(t, storage)
	path := store.(*database.FileProductStore).Path()
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	price := 10.0

	_, err := svc.CreateProduct(context.Background(), &CreateProductRequest{
		Name:     "Orphan",
		Price:    &price,
		ImageURL: "https://example.com/orphan.jpg",
	})
	require.ErrorIs(t, err, database.ErrCatalogCorrupt)
	assert.Equal(t, "products/orphan", destroyed)
}

func TestListProductsNewestFirstAndFiltered(t *testing.T) {
	svc, _ := newProductService(t, disabledStorage(t))
	ctx := context.Background()

	empty, err := svc.ListProducts(ctx, models.FilterOptions{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i, name := range []string{"first", "second", "third"} {
		price := float64(100 * (i + 1))
		typ := models.JewelryTypeRing
		if i == 1 {
			typ = models.JewelryTypeBracelet
		}
		_, err := svc.CreateProduct(ctx, &CreateProductRequest{Name: name, Type: typ, Price: &price})
		require.NoError(t, err)
	}

	all, err := svc.ListProducts(ctx, models.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Name)

	rings, err := svc.ListProducts(ctx, models.FilterOptions{Type: []models.JewelryType{models.JewelryTypeRing}, SortBy: models.SortByPriceAsc})
	require.NoError(t, err)
	require.Len(t, rings, 2)
	assert.Equal(t, "first", rings[0].Name)
}

func TestPublishDesign(t *testing.T) {
	svc, _ := newProductService(t, disabledStorage(t))

	published, err := svc.PublishDesign(context.Background(), models.Design{
		ID:       "session-design",
		Name:     "Generated ring",
		Type:     models.JewelryTypeRing,
		Material: models.MaterialPlatinum,
		Gemstone: models.GemstoneEmerald,
		ImageURL: "https://img.example/g.png",
		Prompt:   "elegant ring",
		Price:    5250,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "session-design", published.ID)
	assert.Equal(t, 5250.0, published.Price)
	assert.Equal(t, "elegant ring", published.Prompt)
}

func TestDesignServiceGenerateAndRehost(t *testing.T) {
	gen := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"url":"https://oai.example/x.png","revised_prompt":"rp"}]}`))
	})
	storage := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "jewelry-designs", r.FormValue("folder"))
		for _, tag := range []string{"jewelry", "ring", "gold", "diamond"} {
			assert.Contains(t, r.FormValue("tags"), tag)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"jewelry-designs/x","secure_url":"https://res/x.png"}`))
	})
	svc := NewDesignService(gen, storage)

	design, err := svc.GenerateDesign(context.Background(), &GenerateDesignRequest{
		Type:     models.JewelryTypeRing,
		Material: models.MaterialGold,
		Gemstone: models.GemstoneDiamond,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://res/x.png", design.ImageURL)
	assert.Equal(t, "https://oai.example/x.png", design.OriginalURL)
	assert.Equal(t, "jewelry-designs/x", design.PublicID)
	assert.Contains(t, design.ThumbnailURL, "w_300,h_300,c_fill")
	assert.Equal(t, design.ThumbnailURL, design.ToGeneratedImage().ThumbnailURL)
	assert.Equal(t, 4000.0, design.Price)
	_, err = time.Parse(time.RFC3339Nano, design.GeneratedAt)
	assert.NoError(t, err)

	saveToCloud := false
	design, err = svc.GenerateDesign(context.Background(), &GenerateDesignRequest{
		Type:        models.JewelryTypeRing,
		Material:    models.MaterialGold,
		Gemstone:    models.GemstoneDiamond,
		SaveToCloud: &saveToCloud,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://oai.example/x.png", design.ImageURL)
	assert.Empty(t, design.PublicID)
	assert.Empty(t, design.ThumbnailURL)

	entry := design.ToGeneratedImage()
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "ring", entry.Type)
}

func TestDesignServiceKeepsProviderURLOnUploadFailure(t *testing.T) {
	gen := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"url":"https://oai.example/y.png"}]}`))
	})
	storage := newCloudinaryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	design, err := NewDesignService(gen, storage).GenerateDesign(context.Background(), &GenerateDesignRequest{
		Type:     models.JewelryTypeNecklace,
		Material: models.MaterialSilver,
		Gemstone: models.GemstoneNone,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://oai.example/y.png", design.ImageURL)
	assert.Empty(t, design.PublicID)
}

func TestCheckoutQuote(t *testing.T) {
	svc := NewCheckoutService(testConfig())

	summary := svc.Quote([]models.CartItem{
		{Design: models.Design{ID: "a", Price: 100}, Quantity: 2},
		{Design: models.Design{ID: "b", Price: 49.99}, Quantity: 1},
	})
	assert.Equal(t, 3, summary.Items)
	assert.Equal(t, 249.99, summary.Subtotal)
	assert.Equal(t, 20.0, summary.Tax)
	assert.Equal(t, 15.0, summary.Shipping)
	assert.Equal(t, 284.99, summary.Total)

	empty := svc.Quote(nil)
	assert.Equal(t, 0.0, empty.Shipping)
	assert.Equal(t, 0.0, empty.Total)
}

func TestCheckoutCreatesPaymentIntent(t *testing.T) {
	cfg := testConfig()
	cfg.Payment.StripeSecretKey = "sk_test_123"
	svc := NewCheckoutService(cfg)

	var captured *stripe.PaymentIntentParams
	svc.createIntent = func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		captured = params
		return &stripe.PaymentIntent{ID: "pi_1", ClientSecret: "secret_1", Status: stripe.PaymentIntentStatusRequiresPaymentMethod}, nil
	}

	_, err := svc.Checkout(context.Background(), "sess", nil, nil)
	assert.ErrorIs(t, err, ErrCartEmpty)

	summary, err := svc.Checkout(context.Background(), "sess", []models.CartItem{
		{Design: models.Design{ID: "a", Price: 100}, Quantity: 1},
	}, &CheckoutRequest{Email: "buyer@example.com"})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, int64(12300), *captured.Amount)
	assert.Equal(t, "usd", *captured.Currency)
	assert.Equal(t, "sess", captured.Metadata["session_id"])
	require.NotNil(t, summary.PaymentIntent)
	assert.Equal(t, "pi_1", summary.PaymentIntent.PaymentID)
	assert.Equal(t, "secret_1", summary.PaymentIntent.ClientSecret)
}
