// internal/tests/session_api_test.go
package tests

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SessionAPITestSuite struct {
	apiSuite
}

func (suite *SessionAPITestSuite) saveDesign(body map[string]interface{}) map[string]interface{} {
	w, resp := suite.request(http.MethodPost, "/api/session/designs", body)
	suite.Require().Equal(http.StatusCreated, w.Code)
	return resp.Data["design"].(map[string]interface{})
}

func (suite *SessionAPITestSuite) TestInitialState() {
	w, resp := suite.request(http.MethodGet, "/api/session/state", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), suite.sessionID, resp.Data["sessionId"])
	assert.Equal(suite.T(), suite.sessionID, w.Header().Get("X-Session-ID"))

	state := resp.Data["state"].(map[string]interface{})
	assert.Equal(suite.T(), "light", state["theme"])
	assert.Nil(suite.T(), state["user"])
	assert.Empty(suite.T(), state["cart"])
	assert.Empty(suite.T(), state["designs"])
}

func (suite *SessionAPITestSuite) TestToggleThemeAndUser() {
	w, resp := suite.request(http.MethodPost, "/api/session/theme/toggle", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "dark", resp.Data["theme"])

	w, resp = suite.request(http.MethodPut, "/api/session/user", map[string]interface{}{
		"id":    "u-1",
		"name":  "Ada",
		"email": "ada@example.com",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Ada", resp.Data["user"].(map[string]interface{})["name"])

	w, _ = suite.request(http.MethodPut, "/api/session/user", map[string]interface{}{"id": "u-1", "name": "Ada", "email": "nope"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, resp = suite.request(http.MethodDelete, "/api/session/user", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Nil(suite.T(), resp.Data["user"])
}

func (suite *SessionAPITestSuite) TestCartFlowAndCheckout() {
	design := suite.saveDesign(map[string]interface{}{
		"name":     "Plain Band",
		"type":     "ring",
		"material": "silver",
		"gemstone": "none",
	})
	assert.Equal(suite.T(), 500.0, design["price"])
	id := design["id"].(string)

	w, resp := suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{"designId": id})
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), 1.0, resp.Data["cartCount"])

	w, resp = suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{"designId": id, "quantity": 2})
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), 3.0, resp.Data["item"].(map[string]interface{})["quantity"])
	assert.Equal(suite.T(), 3.0, resp.Data["cartCount"])

	w, resp = suite.request(http.MethodPatch, "/api/session/cart/"+id, map[string]interface{}{"quantity": 2})
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), 2.0, resp.Data["cartCount"])

	w, resp = suite.request(http.MethodGet, "/api/session/cart", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	summary := resp.Data["summary"].(map[string]interface{})
	assert.Equal(suite.T(), 1000.0, summary["subtotal"])
	assert.Equal(suite.T(), 80.0, summary["tax"])
	assert.Equal(suite.T(), 15.0, summary["shipping"])
	assert.Equal(suite.T(), 1095.0, summary["total"])

	w, resp = suite.request(http.MethodPost, "/api/checkout", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	order := resp.Data["order"].(map[string]interface{})
	assert.Equal(suite.T(), 1095.0, order["total"])
	assert.Nil(suite.T(), order["paymentIntent"])

	w, resp = suite.request(http.MethodGet, "/api/session/cart", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Empty(suite.T(), resp.Data["items"])

	w, resp = suite.request(http.MethodPost, "/api/checkout", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "CART_EMPTY", resp.Code)
}

func (suite *SessionAPITestSuite) TestCartQuantityZeroRemovesLine() {
	id := suite.saveDesign(map[string]interface{}{"name": "Pendant", "type": "pendant"})["id"].(string)

	w, _ := suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{"designId": id})
	suite.Require().Equal(http.StatusOK, w.Code)

	w, resp := suite.request(http.MethodPatch, "/api/session/cart/"+id, map[string]interface{}{"quantity": 0})
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), 0.0, resp.Data["cartCount"])

	w, _ = suite.request(http.MethodDelete, "/api/session/cart/"+id, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *SessionAPITestSuite) TestAddCatalogProductToCart() {
	w, resp := suite.request(http.MethodPost, "/api/products", map[string]interface{}{"name": "Test Ring", "price": 199.99})
	suite.Require().Equal(http.StatusCreated, w.Code)
	id := resp.Data["product"].(map[string]interface{})["id"].(string)

	w, resp = suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{
		"designId":      id,
		"customization": map[string]interface{}{"engraving": "A+B", "finish": "matte"},
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	item := resp.Data["item"].(map[string]interface{})
	assert.Equal(suite.T(), "A+B", item["customization"].(map[string]interface{})["engraving"])

	w, _ = suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{"designId": "missing"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, _ = suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{
		"designId":      id,
		"customization": map[string]interface{}{"finish": "glittery"},
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *SessionAPITestSuite) TestSessionsAreIsolated() {
	id := suite.saveDesign(map[string]interface{}{"name": "Hoops", "type": "earring"})["id"].(string)
	w, _ := suite.request(http.MethodPost, "/api/session/cart", map[string]interface{}{"designId": id})
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.sessionID = uuid.New().String()
	w, resp := suite.request(http.MethodGet, "/api/session/cart", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Empty(suite.T(), resp.Data["items"])
}

func (suite *SessionAPITestSuite) TestSaveGeneratedDesign() {
	w, _ := suite.request(http.MethodPost, "/api/generate-design", map[string]interface{}{
		"type":     "bracelet",
		"material": "platinum",
		"gemstone": "ruby",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w, resp := suite.request(http.MethodGet, "/api/session/state", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	generated := resp.Data["state"].(map[string]interface{})["generatedImages"].([]interface{})
	suite.Require().Len(generated, 1)
	genID := generated[0].(map[string]interface{})["id"].(string)

	design := suite.saveDesign(map[string]interface{}{"generatedImageId": genID})
	assert.Equal(suite.T(), 4500.0, design["price"])
	assert.Equal(suite.T(), "https://oai.example/design.png", design["imageUrl"])

	w, _ = suite.request(http.MethodPost, "/api/session/designs", map[string]interface{}{"generatedImageId": "nope"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, resp = suite.request(http.MethodDelete, "/api/session/generated/"+genID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Empty(suite.T(), resp.Data["generatedImages"])
}

func (suite *SessionAPITestSuite) TestFavoriteAndFilters() {
	ring := suite.saveDesign(map[string]interface{}{"name": "Ring", "type": "ring"})["id"].(string)
	suite.saveDesign(map[string]interface{}{"name": "Chain", "type": "necklace"})

	w, resp := suite.request(http.MethodPost, "/api/session/designs/"+ring+"/favorite", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), true, resp.Data["design"].(map[string]interface{})["isFavorite"])

	w, _ = suite.request(http.MethodPut, "/api/session/filters", map[string]interface{}{"type": []string{"ring"}})
	suite.Require().Equal(http.StatusOK, w.Code)

	w, resp = suite.request(http.MethodGet, "/api/session/designs", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), 1.0, resp.Data["count"])

	w, _ = suite.request(http.MethodPut, "/api/session/filters", map[string]interface{}{"type": []string{"tiara"}})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.request(http.MethodDelete, "/api/session/designs/"+ring, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	w, _ = suite.request(http.MethodPost, "/api/session/designs/"+ring+"/favorite", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *SessionAPITestSuite) TestPublishWithoutAdminAuth() {
	id := suite.saveDesign(map[string]interface{}{"name": "Signet", "type": "ring"})["id"].(string)

	w, resp := suite.request(http.MethodPost, "/api/session/designs/"+id+"/publish", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	productID := resp.Data["product"].(map[string]interface{})["id"].(string)
	assert.Contains(suite.T(), suite.productIDs(), productID)

	w, _ = suite.request(http.MethodPost, "/api/admin/login", map[string]interface{}{"password": "anything"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestSessionAPISuite(t *testing.T) {
	suite.Run(t, new(SessionAPITestSuite))
}
