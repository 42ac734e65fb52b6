package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/motbey/mylms/core"
	"github.com/motbey/mylms/core/favorite"
)

type favoriteApi struct {
	svc      favorite.ServiceInterface
	validate *validator.Validate
}

func registerFavoriteAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc favorite.ServiceInterface,
	validate *validator.Validate,
) {
	api := favoriteApi{
		svc:      svc,
		validate: validate,
	}

	// favorites are always scoped to the authenticated user
	fg := g.Group("/favorites", jwt)
	fg.GET("", api.list)
	fg.POST("", api.create)
	fg.DELETE("/:slug", api.destroy)
	fg.PUT("/order", api.reorder)
}

// Handlers

func (api *favoriteApi) list(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	favs, err := api.svc.List(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "listing favorites")
	}
	if favs == nil {
		favs = []favorite.Favorite{}
	}
	return ctx.JSON(http.StatusOK, favs)
}

func (api *favoriteApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data favorite.NewFavorite
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFavorite")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fav, err := api.svc.Add(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		// capacity and duplicate rejections carry their own status
		return errors.Wrap(err, "adding favorite")
	}
	return ctx.JSON(http.StatusCreated, fav)
}

func (api *favoriteApi) destroy(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	// removing an absent slug succeeds; DELETE is idempotent
	slug := core.CleanString(ctx.Param("slug"), true /* lower */)
	if err := api.svc.Remove(ctx.Request().Context(), claims.Subject, slug); err != nil {
		return errors.Wrap(err, "removing favorite")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *favoriteApi) reorder(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data ReorderRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReorderRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Reorder(ctx.Request().Context(), claims.Subject, data.Order); err != nil {
		return errors.Wrap(err, "reordering favorites")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type ReorderRequest struct {
	Order []string `json:"order" validate:"required"`
}

func (rr *ReorderRequest) Validate(validate *validator.Validate) error {
	for i, slug := range rr.Order {
		rr.Order[i] = core.CleanString(slug, true /* lower */)
	}
	return validate.Struct(rr)
}
