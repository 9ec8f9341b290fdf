package user

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/lukmanhakim/user-portal/internal"
	userdm "github.com/lukmanhakim/user-portal/internal/core/datamodel/user"
	"github.com/lukmanhakim/user-portal/internal/transport"
)

// Mock ServiceAPI for testing
type mockUserService struct {
	registered RegisterDTO
	created    CreateUserDTO
	image      *ImageUpload
	user       *userdm.User
	users      []*userdm.User
	deletedID  int64
	err        error
}

func (m *mockUserService) Register(_ context.Context, dto RegisterDTO) (*userdm.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.registered = dto
	return m.user, nil
}

func (m *mockUserService) Create(_ context.Context, dto CreateUserDTO, image *ImageUpload) (*userdm.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = dto
	m.image = image
	return m.user, nil
}

func (m *mockUserService) Update(_ context.Context, _ string, dto CreateUserDTO, image *ImageUpload) (*userdm.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = dto
	m.image = image
	return m.user, nil
}

func (m *mockUserService) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.deletedID = id
	return nil
}

func (m *mockUserService) FindByUsername(_ context.Context, _ string) (*userdm.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserService) List(_ context.Context) ([]*userdm.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockUserService) ResetPassword(_ context.Context, _ string) error {
	return m.err
}

func (m *mockUserService) UpdateProfileImage(_ context.Context, _ string, image *ImageUpload) (*userdm.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.image = image
	return m.user, nil
}

var _ = ginkgo.Describe("UserHandler", func() {
	var (
		handler *Handler
		svc     *mockUserService
	)

	ginkgo.BeforeEach(func() {
		svc = &mockUserService{
			user: &userdm.User{
				ID:        7,
				PublicID:  "pub-budi",
				FirstName: "Budi",
				LastName:  "Santoso",
				Username:  "budi",
				Email:     "budi@mail.com",
				Role:      "ROLE_USER",
				IsActive:  true,
				JoinedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
		}
		handler = NewHandler(svc, nil)
	})

	urlParamRequest := func(method, target, key, value string) *http.Request {
		req := httptest.NewRequest(method, target, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	ginkgo.Describe("Register", func() {
		ginkgo.It("should decode the payload and respond 201", func() {
			// Given
			req := httptest.NewRequest(http.MethodPost, "/user/register",
				strings.NewReader(`{"firstName":"Budi","lastName":"Santoso","username":"budi","email":"budi@mail.com"}`))
			rec := httptest.NewRecorder()

			// When
			handler.Register(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(svc.registered.Username).To(gomega.Equal("budi"))

			var view map[string]any
			gomega.Expect(json.NewDecoder(rec.Body).Decode(&view)).To(gomega.Succeed())
			gomega.Expect(view["userId"]).To(gomega.Equal("pub-budi"))
		})

		ginkgo.It("should surface a conflict as 409 with the uniform body", func() {
			// Given
			svc.err = internal.ErrUsernameExists
			req := httptest.NewRequest(http.MethodPost, "/user/register",
				strings.NewReader(`{"firstName":"B","lastName":"S","username":"budi","email":"b@mail.com"}`))
			rec := httptest.NewRecorder()

			// When
			handler.Register(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))

			var body transport.HTTPResponse
			gomega.Expect(json.NewDecoder(rec.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body.Message).To(gomega.Equal("Username already exists"))
		})
	})

	ginkgo.Describe("Add", func() {
		ginkgo.It("should parse the multipart form including the image", func() {
			// Given
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			gomega.Expect(mw.WriteField("firstName", "Rina")).To(gomega.Succeed())
			gomega.Expect(mw.WriteField("lastName", "Wati")).To(gomega.Succeed())
			gomega.Expect(mw.WriteField("username", "rina")).To(gomega.Succeed())
			gomega.Expect(mw.WriteField("email", "rina@mail.com")).To(gomega.Succeed())
			gomega.Expect(mw.WriteField("role", "ROLE_HR")).To(gomega.Succeed())
			gomega.Expect(mw.WriteField("isActive", "true")).To(gomega.Succeed())
			gomega.Expect(mw.WriteField("isNonLocked", "true")).To(gomega.Succeed())

			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", `form-data; name="profileImage"; filename="rina.png"`)
			header.Set("Content-Type", "image/png")
			part, err := mw.CreatePart(header)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = part.Write([]byte("fake image bytes"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(mw.Close()).To(gomega.Succeed())

			req := httptest.NewRequest(http.MethodPost, "/user/add", &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			rec := httptest.NewRecorder()

			// When
			handler.Add(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(svc.created.Username).To(gomega.Equal("rina"))
			gomega.Expect(svc.created.Role).To(gomega.Equal("ROLE_HR"))
			gomega.Expect(svc.created.IsActive).To(gomega.BeTrue())
			gomega.Expect(svc.created.IsLocked).To(gomega.BeFalse())
			gomega.Expect(svc.image).ToNot(gomega.BeNil())
			gomega.Expect(svc.image.ContentType).To(gomega.Equal("image/png"))
		})

		ginkgo.It("should invert isNonLocked into the locked flag", func() {
			// Given
			form := url.Values{}
			form.Set("firstName", "Rina")
			form.Set("lastName", "Wati")
			form.Set("username", "rina")
			form.Set("email", "rina@mail.com")
			form.Set("role", "ROLE_USER")
			form.Set("isActive", "true")
			form.Set("isNonLocked", "false")

			req := httptest.NewRequest(http.MethodPost, "/user/add", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			// When
			handler.Add(rec, req)

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(svc.created.IsLocked).To(gomega.BeTrue())
			gomega.Expect(svc.image).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Find", func() {
		ginkgo.It("should fetch a user by the path parameter", func() {
			// Given
			rec := httptest.NewRecorder()

			// When
			handler.Find(rec, urlParamRequest(http.MethodGet, "/user/find/budi", "username", "budi"))

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should respond 404 for an unknown user", func() {
			// Given
			svc.err = internal.ErrUserNotFound
			rec := httptest.NewRecorder()

			// When
			handler.Find(rec, urlParamRequest(http.MethodGet, "/user/find/ghost", "username", "ghost"))

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should return all users", func() {
			// Given
			svc.users = []*userdm.User{svc.user}
			rec := httptest.NewRecorder()

			// When
			handler.List(rec, httptest.NewRequest(http.MethodGet, "/user/list", nil))

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var views []map[string]any
			gomega.Expect(json.NewDecoder(rec.Body).Decode(&views)).To(gomega.Succeed())
			gomega.Expect(views).To(gomega.HaveLen(1))
		})

		ginkgo.It("should return an empty JSON array when no users exist", func() {
			// Given
			rec := httptest.NewRecorder()

			// When
			handler.List(rec, httptest.NewRequest(http.MethodGet, "/user/list", nil))

			// Then
			gomega.Expect(strings.TrimSpace(rec.Body.String())).To(gomega.Equal("[]"))
		})
	})

	ginkgo.Describe("ResetPassword", func() {
		ginkgo.It("should confirm with the email-sent message", func() {
			// Given
			rec := httptest.NewRecorder()

			// When
			handler.ResetPassword(rec, urlParamRequest(http.MethodGet, "/user/reset-password/budi@mail.com", "email", "budi@mail.com"))

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var body transport.HTTPResponse
			gomega.Expect(json.NewDecoder(rec.Body).Decode(&body)).To(gomega.Succeed())
			gomega.Expect(body.Message).To(gomega.Equal("An email with a new password was sent to: budi@mail.com"))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should delete by numeric id", func() {
			// Given
			rec := httptest.NewRecorder()

			// When
			handler.Delete(rec, urlParamRequest(http.MethodDelete, "/user/delete/7", "id", "7"))

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(svc.deletedID).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should reject a non-numeric id", func() {
			// Given
			rec := httptest.NewRecorder()

			// When
			handler.Delete(rec, urlParamRequest(http.MethodDelete, "/user/delete/abc", "id", "abc"))

			// Then
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})
})
