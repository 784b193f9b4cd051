package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/Astemirdum/library-catalog/catalog/internal/handler"
	"github.com/Astemirdum/library-catalog/catalog/internal/library"
	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	"github.com/Astemirdum/library-catalog/catalog/internal/publisher"
	"github.com/Astemirdum/library-catalog/catalog/internal/service"
	"github.com/Astemirdum/library-catalog/pkg/validate"

	service_mocks "github.com/Astemirdum/library-catalog/catalog/internal/handler/mocks"
)

type response struct {
	expectedCode int
	expectedBody string
}

func serve(t *testing.T, h *handler.Handler, register func(e *echo.Echo, h *handler.Handler), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	register(e, h)

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	return w
}

func TestHandler_AddBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockCatalogService, book model.Book)

	book := model.Book{ISBN: "978-0451524935", Title: "1984", Author: "George Orwell", Genre: model.GenreFiction, TotalCopies: 2}
	body := `{"isbn":"978-0451524935","title":"1984","author":"George Orwell","genre":"Fiction","totalCopies":2}`

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: body,
			mockBehavior: func(r *service_mocks.MockCatalogService, book model.Book) {
				r.EXPECT().AddBook(gomock.Any(), book).Return(nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: body,
			},
		},
		{
			name: "err. duplicate",
			body: body,
			mockBehavior: func(r *service_mocks.MockCatalogService, book model.Book) {
				r.EXPECT().AddBook(gomock.Any(), book).Return(errs.ErrDuplicateISBN)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"isbn already exists"}`,
			},
		},
		{
			name: "err. invalid genre",
			body: body,
			mockBehavior: func(r *service_mocks.MockCatalogService, book model.Book) {
				r.EXPECT().AddBook(gomock.Any(), book).Return(errs.ErrInvalidGenre)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"genre is invalid"}`,
			},
		},
		{
			name: "err. internal",
			body: body,
			mockBehavior: func(r *service_mocks.MockCatalogService, book model.Book) {
				r.EXPECT().AddBook(gomock.Any(), book).Return(errors.New("internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"internal"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			tt.mockBehavior(svc, book)
			w := serve(t, h, func(e *echo.Echo, h *handler.Handler) { e.POST("/books", h.AddBook) },
				http.MethodPost, "/books", tt.body)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_AddBook_BadBody(t *testing.T) {
	t.Parallel()
	for _, body := range []string{
		`{"isbn":"1","author":"A","genre":"Fiction"}`,
		`{"isbn":`,
	} {
		c := gomock.NewController(t)
		svc := service_mocks.NewMockCatalogService(c)
		h := handler.New(svc, zap.NewExample().Named("test"))

		w := serve(t, h, func(e *echo.Echo, h *handler.Handler) { e.POST("/books", h.AddBook) },
			http.MethodPost, "/books", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		c.Finish()
	}
}

func TestHandler_BorrowBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockCatalogService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"memberId":"M1"}`,
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().BorrowBook(gomock.Any(), "1", "M1").Return(nil)
			},
			response: response{expectedCode: http.StatusNoContent},
		},
		{
			name: "err. no copy available",
			body: `{"memberId":"M1"}`,
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().BorrowBook(gomock.Any(), "1", "M1").Return(errs.ErrNoCopyAvailable)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"no copy available"}`,
			},
		},
		{
			name: "err. loan limit",
			body: `{"memberId":"M1"}`,
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().BorrowBook(gomock.Any(), "1", "M1").Return(errs.ErrLoanLimitReached)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"member has too many books"}`,
			},
		},
		{
			name: "err. member not registered",
			body: `{"memberId":"M1"}`,
			mockBehavior: func(r *service_mocks.MockCatalogService) {
				r.EXPECT().BorrowBook(gomock.Any(), "1", "M1").Return(errs.ErrMemberNotRegistered)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"member is not registered"}`,
			},
		},
		{
			name:         "err. memberId required",
			body:         `{}`,
			mockBehavior: func(r *service_mocks.MockCatalogService) {},
			response:     response{expectedCode: http.StatusBadRequest},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCatalogService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			tt.mockBehavior(svc)
			w := serve(t, h, func(e *echo.Echo, h *handler.Handler) { e.POST("/books/:isbn/borrow", h.BorrowBook) },
				http.MethodPost, "/books/1/borrow", tt.body)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnBook(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))
	register := func(e *echo.Echo, h *handler.Handler) { e.POST("/books/:isbn/return", h.ReturnBook) }

	svc.EXPECT().ReturnBook(gomock.Any(), "1", "M1").Return(errs.ErrNotBorrowed)
	w := serve(t, h, register, http.MethodPost, "/books/1/return", `{"memberId":"M1"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, `{"message":"book is not borrowed by member"}`, strings.Trim(w.Body.String(), "\n"))

	svc.EXPECT().ReturnBook(gomock.Any(), "1", "M1").Return(nil)
	w = serve(t, h, register, http.MethodPost, "/books/1/return", `{"memberId":"M1"}`)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_GetBooks(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))
	register := func(e *echo.Echo, h *handler.Handler) { e.GET("/books", h.GetBooks) }

	items := model.ListBooks{Items: []model.Book{{ISBN: "1", Title: "Dune", Author: "Frank Herbert", Genre: model.GenreSciFi, TotalCopies: 1}}}
	expected := `{"items":[{"isbn":"1","title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","totalCopies":1}]}`

	svc.EXPECT().SearchBooks(gomock.Any(), model.SearchByAuthor, "herbert").Return(items)
	w := serve(t, h, register, http.MethodGet, "/books?criteria=author&value=herbert", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, expected, strings.Trim(w.Body.String(), "\n"))

	svc.EXPECT().ListBooks(gomock.Any()).Return(items)
	w = serve(t, h, register, http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, expected, strings.Trim(w.Body.String(), "\n"))

	svc.EXPECT().SearchBooks(gomock.Any(), model.SearchCriteria("isbn"), "1").Return(model.ListBooks{Items: []model.Book{}})
	w = serve(t, h, register, http.MethodGet, "/books?criteria=isbn&value=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"items":[]}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_DeleteBook(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))
	register := func(e *echo.Echo, h *handler.Handler) { e.DELETE("/books/:isbn", h.DeleteBook) }

	svc.EXPECT().DeleteBook(gomock.Any(), "1").Return(errs.ErrBookOnLoan)
	w := serve(t, h, register, http.MethodDelete, "/books/1", "")
	require.Equal(t, http.StatusConflict, w.Code)

	svc.EXPECT().DeleteBook(gomock.Any(), "2").Return(errs.ErrBookNotFound)
	w = serve(t, h, register, http.MethodDelete, "/books/2", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"message":"book not found"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_MemberLoans(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockCatalogService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))
	register := func(e *echo.Echo, h *handler.Handler) { e.GET("/members/:memberId/loans", h.MemberLoans) }

	svc.EXPECT().MemberLoans(gomock.Any(), "M1").Return(model.MemberLoans{MemberID: "M1", ISBNs: []string{"1", "2"}, Remaining: 1}, nil)
	w := serve(t, h, register, http.MethodGet, "/members/M1/loans", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"memberId":"M1","isbns":["1","2"],"remaining":1}`, strings.Trim(w.Body.String(), "\n"))

	svc.EXPECT().MemberLoans(gomock.Any(), "M9").Return(model.MemberLoans{}, errs.ErrMemberNotFound)
	w = serve(t, h, register, http.MethodGet, "/members/M9/loans", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_LendingFlow(t *testing.T) {
	t.Parallel()
	log := zap.NewNop()
	svc := service.NewService(library.New(library.WithMaxLoans(1)), publisher.NewNopPublisher(), log)
	e := handler.New(svc, log).NewRouter()

	do := func(method, target, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)
		return w
	}

	require.Equal(t, http.StatusOK, do(http.MethodGet, "/manage/health", "").Code)
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/books",
		`{"isbn":"1","title":"1984","author":"George Orwell","genre":"Fiction","totalCopies":1}`).Code)
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/books",
		`{"isbn":"2","title":"Dune","author":"Frank Herbert","genre":"Sci-Fi","totalCopies":1}`).Code)
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/members", `{"memberId":"M1","name":"Alice"}`).Code)
	require.Equal(t, http.StatusCreated, do(http.MethodPost, "/api/v1/members", `{"memberId":"M2","name":"Bob"}`).Code)

	require.Equal(t, http.StatusNoContent, do(http.MethodPost, "/api/v1/books/1/borrow", `{"memberId":"M1"}`).Code)
	require.Equal(t, http.StatusConflict, do(http.MethodPost, "/api/v1/books/1/borrow", `{"memberId":"M2"}`).Code)
	require.Equal(t, http.StatusConflict, do(http.MethodPost, "/api/v1/books/2/borrow", `{"memberId":"M1"}`).Code)

	w := do(http.MethodGet, "/api/v1/books/1/availability", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"isbn":"1","totalCopies":1,"onLoan":1,"available":0,"holders":["M1"]}`, strings.Trim(w.Body.String(), "\n"))

	require.Equal(t, http.StatusConflict, do(http.MethodDelete, "/api/v1/books/1", "").Code)
	require.Equal(t, http.StatusNoContent, do(http.MethodPost, "/api/v1/books/1/return", `{"memberId":"M1"}`).Code)
	require.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/api/v1/books/1", "").Code)
	require.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/v1/books/1", "").Code)

	w = do(http.MethodPatch, "/api/v1/books/2", `{"title":"Dune Messiah"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `{"isbn":"2","title":"Dune Messiah","author":"Frank Herbert","genre":"Sci-Fi","totalCopies":1}`, strings.Trim(w.Body.String(), "\n"))

	w = do(http.MethodGet, "/api/v1/members", "")
	require.Equal(t, `{"items":[{"memberId":"M1","name":"Alice"},{"memberId":"M2","name":"Bob"}]}`, strings.Trim(w.Body.String(), "\n"))
}
