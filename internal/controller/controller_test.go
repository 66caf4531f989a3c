package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"
	"codal-docs-be/internal/pkg/serverutils"
	"codal-docs-be/internal/render"
	"codal-docs-be/internal/repository/memory"
	"codal-docs-be/internal/repository/repotest"
	"codal-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotices struct{}

func (nopNotices) PublishNotice(context.Context, feed.Notice) error { return nil }

type envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	ErrorCode string            `json:"error_code"`
	Data      json.RawMessage   `json:"data"`
	Errors    map[string]string `json:"errors"`
}

func newApp(t *testing.T) (*fiber.App, service.ITaxonomyService) {
	t.Helper()
	factory, _ := repotest.NewFactory(t)
	log := logger.NewNopLogger()

	taxonomy := service.NewTaxonomyService(factory, memory.NewTaxonomyCache(), nopNotices{}, nil, "Civil Law", log)
	documents := service.NewDocumentService(factory, nopNotices{}, nil, log)
	articles := service.NewArticleService(factory, nil, log)

	app := fiber.New(fiber.Config{UnescapePath: true})
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewSubjectController(taxonomy).RegisterRoutes(api)
	NewDocumentController(documents).RegisterRoutes(api)
	NewArticleController(articles).RegisterRoutes(api)
	NewDashboardController(service.NewDashboardService(factory)).RegisterRoutes(api)
	NewRenderController(render.Default()).RegisterRoutes(api)

	_, err := taxonomy.SeedSubjects(context.Background(), []string{"Civil Law", "Criminal Law"})
	require.NoError(t, err)
	return app, taxonomy
}

func call(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func subjectPath(subject string) string {
	return "/api/subject/v1/" + url.PathEscape(subject) + "/subtopics"
}

func TestSubjectController(t *testing.T) {
	app, _ := newApp(t)

	status, env := call(t, app, http.MethodGet, "/api/subject/v1", nil)
	require.Equal(t, http.StatusOK, status)
	var subjects dto.SubjectListResponse
	require.NoError(t, json.Unmarshal(env.Data, &subjects))
	assert.Equal(t, []string{"Civil Law", "Criminal Law"}, subjects.Subjects)
	assert.Equal(t, "Civil Law", subjects.DefaultSubjectId)

	status, _ = call(t, app, http.MethodPost, subjectPath("Civil Law"), dto.AddSubtopicRequest{Name: "Contracts"})
	require.Equal(t, http.StatusCreated, status)

	status, env = call(t, app, http.MethodGet, subjectPath("Civil Law"), nil)
	require.Equal(t, http.StatusOK, status)
	var subtopics []dto.SubtopicResponse
	require.NoError(t, json.Unmarshal(env.Data, &subtopics))
	require.Len(t, subtopics, 1)
	assert.Equal(t, "Contracts", subtopics[0].Id)
	assert.Equal(t, "Civil Law", subtopics[0].SubjectId)
}

func TestSubjectControllerRejectsBadSubtopic(t *testing.T) {
	app, _ := newApp(t)

	status, env := call(t, app, http.MethodPost, subjectPath("Civil Law"), dto.AddSubtopicRequest{Name: ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.Contains(t, env.Errors, "name")

	status, env = call(t, app, http.MethodPost, subjectPath("Maritime Law"), dto.AddSubtopicRequest{Name: "Ships"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestDocumentController(t *testing.T) {
	app, taxonomy := newApp(t)
	_, err := taxonomy.AddSubtopic(context.Background(), "Civil Law", "Contracts")
	require.NoError(t, err)

	subject, subtopic := "Civil Law", "Contracts"
	status, env := call(t, app, http.MethodPost, "/api/document/v1", dto.DocumentRequest{
		Title:       "  Offer and acceptance ",
		ContentHtml: `<p>Binding <script>alert(1)</script>terms</p>`,
		SubjectId:   &subject,
		SubtopicId:  &subtopic,
	})
	require.Equal(t, http.StatusCreated, status)

	var created dto.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Offer and acceptance", created.Title)
	assert.NotContains(t, created.ContentHtml, "script")

	status, env = call(t, app, http.MethodGet, "/api/document/v1?subject_id="+url.QueryEscape(subject)+"&subtopic_id=Contracts", nil)
	require.Equal(t, http.StatusOK, status)
	var list []dto.DocumentSummary
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "OA", list[0].Initials)

	status, _ = call(t, app, http.MethodGet, "/api/document/v1?subject_id=Criminal+Law", nil)
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodPut, "/api/document/v1/"+created.Id, dto.DocumentRequest{
		Title:       "Offer",
		ContentHtml: "<p>updated</p>",
		SubjectId:   &subject,
	})
	require.Equal(t, http.StatusOK, status)
	var updated dto.DocumentResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Offer", updated.Title)
	assert.Nil(t, updated.SubtopicId)

	status, _ = call(t, app, http.MethodDelete, "/api/document/v1/"+created.Id, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodGet, "/api/document/v1/"+created.Id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.ErrorCode)
}

func TestDocumentControllerValidation(t *testing.T) {
	app, _ := newApp(t)

	status, env := call(t, app, http.MethodPost, "/api/document/v1", dto.DocumentRequest{
		Title:       "Empty",
		ContentHtml: "<p><br></p>",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.Contains(t, env.Errors, "content_html")

	req := httptest.NewRequest(http.MethodPost, "/api/document/v1", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRenderController(t *testing.T) {
	app, _ := newApp(t)

	status, env := call(t, app, http.MethodPost, "/api/render/v1/preview", dto.RenderPreviewRequest{
		Title:       "<b>T</b>",
		ContentHtml: `<h1>Heading</h1><p onclick="x()">Body</p>`,
		Surfaces:    []string{"mobile", "viewer"},
	})
	require.Equal(t, http.StatusOK, status)

	var views []render.View
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 2)
	for _, v := range views {
		assert.NotContains(t, v.HTML, "onclick")
		assert.Contains(t, v.Fragment, "&lt;b&gt;T&lt;/b&gt;")
	}

	status, _ = call(t, app, http.MethodPost, "/api/render/v1/preview", dto.RenderPreviewRequest{
		ContentHtml: "<p>x</p>",
		Surfaces:    []string{"printer"},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = call(t, app, http.MethodGet, "/api/render/v1/contract", nil)
	require.Equal(t, http.StatusOK, status)
	var contract dto.RenderContractResponse
	require.NoError(t, json.Unmarshal(env.Data, &contract))
	assert.Len(t, contract.Stylesheets, 3)
	assert.NotEmpty(t, contract.Stylesheets["editor"])
}

func TestArticleAndDashboardControllers(t *testing.T) {
	app, _ := newApp(t)

	status, env := call(t, app, http.MethodPost, "/api/article/v1", dto.ArticleRequest{
		Title:       "Release notes",
		Author:      "Editorial",
		ContentHtml: "<p>New <em>features</em></p>",
	})
	require.Equal(t, http.StatusCreated, status)
	var article dto.ArticleResponse
	require.NoError(t, json.Unmarshal(env.Data, &article))

	status, _ = call(t, app, http.MethodGet, "/api/article/v1/"+article.Id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodGet, "/api/dashboard/v1/stats", nil)
	require.Equal(t, http.StatusOK, status)
	var stats dto.DashboardStatsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 2, stats.TotalSubjects)
	assert.EqualValues(t, 1, stats.TotalArticles)

	status, _ = call(t, app, http.MethodDelete, "/api/article/v1/"+article.Id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/api/article/v1/"+article.Id, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
