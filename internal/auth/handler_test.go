package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/lukmanhakim/user-portal/internal"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
	"github.com/lukmanhakim/user-portal/internal/transport"
)

// Mock ServiceAPI for testing
type mockAuthService struct {
	user  *userdm.User
	token string
	err   error
}

func (m *mockAuthService) Login(_ context.Context, _ LoginDTO) (*userdm.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler *Handler
		svc     *mockAuthService
	)

	ginkgo.BeforeEach(func() {
		svc = &mockAuthService{
			user: &userdm.User{
				PublicID:  "pub-budi",
				FirstName: "Budi",
				LastName:  "Santoso",
				Username:  "budi",
				Email:     "budi@mail.com",
				Role:      "ROLE_ADMIN",
				IsActive:  true,
				JoinedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
			token: "signed.token.value",
		}
		handler = NewHandler(svc)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when authentication succeeds", func() {
			ginkgo.It("should put the token in the Jwt-Token header, never the body", func() {
				// Given
				req := httptest.NewRequest(http.MethodPost, "/user/login",
					strings.NewReader(`{"username":"budi","password":"secret"}`))
				rec := httptest.NewRecorder()

				// When
				handler.Login(rec, req)

				// Then
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
				gomega.Expect(rec.Header().Get(JWTTokenHeader)).To(gomega.Equal("signed.token.value"))
				gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("signed.token.value"))
			})

			ginkgo.It("should return the user view without credential fields", func() {
				// Given
				req := httptest.NewRequest(http.MethodPost, "/user/login",
					strings.NewReader(`{"username":"budi","password":"secret"}`))
				rec := httptest.NewRecorder()

				// When
				handler.Login(rec, req)

				// Then
				var view map[string]any
				gomega.Expect(json.NewDecoder(rec.Body).Decode(&view)).To(gomega.Succeed())
				gomega.Expect(view["username"]).To(gomega.Equal("budi"))
				gomega.Expect(view["role"]).To(gomega.Equal("ROLE_ADMIN"))
				gomega.Expect(view["authorities"]).To(gomega.HaveLen(3))
				gomega.Expect(view).ToNot(gomega.HaveKey("password"))
				gomega.Expect(view).ToNot(gomega.HaveKey("passwordHash"))
			})
		})

		ginkgo.Context("when authentication fails", func() {
			ginkgo.It("should render the uniform error body with 401", func() {
				// Given
				svc.err = internal.ErrInvalidCredentials
				req := httptest.NewRequest(http.MethodPost, "/user/login",
					strings.NewReader(`{"username":"budi","password":"wrong"}`))
				rec := httptest.NewRecorder()

				// When
				handler.Login(rec, req)

				// Then
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
				gomega.Expect(rec.Header().Get(JWTTokenHeader)).To(gomega.BeEmpty())

				var body transport.HTTPResponse
				gomega.Expect(json.NewDecoder(rec.Body).Decode(&body)).To(gomega.Succeed())
				gomega.Expect(body.HTTPStatusCode).To(gomega.Equal(http.StatusUnauthorized))
				gomega.Expect(body.Message).To(gomega.Equal("Username or password incorrect. Please try again"))
				gomega.Expect(body.Reason).To(gomega.Equal("UNAUTHORIZED"))
			})
		})

		ginkgo.Context("when the body is not JSON", func() {
			ginkgo.It("should reject with 400", func() {
				// Given
				req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader("not json"))
				rec := httptest.NewRecorder()

				// When
				handler.Login(rec, req)

				// Then
				gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
			})
		})
	})
})
