// internal/handlers/helpers.go
package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/jewelry-atelier/internal/appstate"
	"github.com/javajoker/jewelry-atelier/internal/database"
	"github.com/javajoker/jewelry-atelier/internal/i18n"
	"github.com/javajoker/jewelry-atelier/internal/models"
	"github.com/javajoker/jewelry-atelier/internal/utils"
)

// bindAndValidate decodes the JSON body into req and runs struct
// validation. It writes the 400 response itself and returns the validation
// errors (nil on success) along with whether the request may proceed.
func bindAndValidate(c *gin.Context, req interface{}) ([]utils.ValidationError, bool) {
	lang := utils.GetLangFromContext(c)

	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return nil, false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		return validationErrors, false
	}
	return nil, true
}

// storageErrorResponse maps catalog failures to 500 responses.
func storageErrorResponse(c *gin.Context, err error, key string) {
	lang := utils.GetLangFromContext(c)

	if errors.Is(err, database.ErrCatalogCorrupt) {
		logrus.WithError(err).Error("Catalog is corrupt")
		utils.InternalErrorResponse(c, "CATALOG_CORRUPT", i18n.T(lang, i18n.KeyCatalogCorrupt))
		return
	}

	logrus.WithError(err).Error("Catalog storage error")
	utils.InternalErrorResponse(c, "STORAGE_ERROR", i18n.T(lang, key))
}

func stateStore(c *gin.Context) *appstate.Store {
	if store, ok := utils.GetStateStore(c); ok {
		return store
	}
	return nil
}

func priceRangeProblem() utils.ValidationError {
	return utils.ValidationError{
		Field: "priceRange", Tag: "range", Message: "priceRange must be [min, max] with 0 <= min <= max",
	}
}

// parseFilterQuery reads type, material, gemstone, minPrice, maxPrice and
// sortBy from the query string.
func parseFilterQuery(c *gin.Context) (models.FilterOptions, []utils.ValidationError) {
	var filters models.FilterOptions
	var problems []utils.ValidationError

	for _, v := range utils.SplitList(c.Query("type")) {
		if utils.ValidateVar(v, "jewelry_type") != nil {
			problems = append(problems, invalidQuery("type", v))
			continue
		}
		filters.Type = append(filters.Type, models.JewelryType(v))
	}
	for _, v := range utils.SplitList(c.Query("material")) {
		if utils.ValidateVar(v, "material") != nil {
			problems = append(problems, invalidQuery("material", v))
			continue
		}
		filters.Material = append(filters.Material, models.Material(v))
	}
	for _, v := range utils.SplitList(c.Query("gemstone")) {
		if utils.ValidateVar(v, "gemstone") != nil {
			problems = append(problems, invalidQuery("gemstone", v))
			continue
		}
		filters.Gemstone = append(filters.Gemstone, models.Gemstone(v))
	}

	minPrice, maxPrice := 0.0, math.MaxFloat64
	hasRange := false
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			problems = append(problems, invalidQuery("minPrice", raw))
		} else {
			minPrice, hasRange = v, true
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			problems = append(problems, invalidQuery("maxPrice", raw))
		} else {
			maxPrice, hasRange = v, true
		}
	}
	if hasRange {
		if minPrice > maxPrice {
			problems = append(problems, priceRangeProblem())
		} else {
			filters.PriceRange = &[2]float64{minPrice, maxPrice}
		}
	}

	if raw := c.Query("sortBy"); raw != "" {
		if !models.SortBy(raw).Valid() {
			problems = append(problems, invalidQuery("sortBy", raw))
		} else {
			filters.SortBy = models.SortBy(raw)
		}
	}

	return filters, problems
}

func invalidQuery(field, value string) utils.ValidationError {
	return utils.ValidationError{
		Field:   field,
		Tag:     "query",
		Message: field + " has unsupported value " + strconv.Quote(value),
	}
}
