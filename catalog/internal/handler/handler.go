package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	md "github.com/Astemirdum/library-catalog/pkg/middleware"
	"github.com/Astemirdum/library-catalog/pkg/validate"
)

type Handler struct {
	catalogSvc CatalogService
	log        *zap.Logger
}

func New(catalogSvc CatalogService, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestID(),
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/books", h.AddBook)
	api.GET("/books", h.GetBooks)
	api.GET("/books/:isbn", h.GetBook)
	api.PATCH("/books/:isbn", h.UpdateBook)
	api.DELETE("/books/:isbn", h.DeleteBook)
	api.GET("/books/:isbn/availability", h.Availability)
	api.POST("/books/:isbn/borrow", h.BorrowBook)
	api.POST("/books/:isbn/return", h.ReturnBook)

	api.POST("/members", h.AddMember)
	api.GET("/members", h.GetMembers)
	api.GET("/members/:memberId", h.GetMember)
	api.GET("/members/:memberId/loans", h.MemberLoans)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) AddBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book := req.Book()
	if err := h.catalogSvc.AddBook(c.Request().Context(), book); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	criteria := c.QueryParam("criteria")
	if criteria == "" {
		return c.JSON(http.StatusOK, h.catalogSvc.ListBooks(ctx))
	}
	return c.JSON(http.StatusOK, h.catalogSvc.SearchBooks(ctx, model.SearchCriteria(criteria), c.QueryParam("value")))
}

func (h *Handler) GetBook(c echo.Context) error {
	book, err := h.catalogSvc.GetBook(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var patch model.BookPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.catalogSvc.UpdateBook(c.Request().Context(), c.Param("isbn"), patch)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	if err := h.catalogSvc.DeleteBook(c.Request().Context(), c.Param("isbn")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Availability(c echo.Context) error {
	av, err := h.catalogSvc.Availability(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, av)
}

func (h *Handler) BorrowBook(c echo.Context) error {
	var req model.LendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.catalogSvc.BorrowBook(c.Request().Context(), c.Param("isbn"), req.MemberID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ReturnBook(c echo.Context) error {
	var req model.LendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.catalogSvc.ReturnBook(c.Request().Context(), c.Param("isbn"), req.MemberID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddMember(c echo.Context) error {
	var req model.CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	member := model.Member{ID: req.ID, Name: req.Name, Email: req.Email}
	if err := h.catalogSvc.AddMember(c.Request().Context(), member); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *Handler) GetMembers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalogSvc.ListMembers(c.Request().Context()))
}

func (h *Handler) GetMember(c echo.Context) error {
	member, err := h.catalogSvc.GetMember(c.Request().Context(), c.Param("memberId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, member)
}

func (h *Handler) MemberLoans(c echo.Context) error {
	loans, err := h.catalogSvc.MemberLoans(c.Request().Context(), c.Param("memberId"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrMemberNotFound),
		errors.Is(err, errs.ErrMemberNotRegistered):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidGenre), errors.Is(err, errs.ErrInvalidCopies):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errs.IsRejected(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
