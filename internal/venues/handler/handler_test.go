package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"debatetab/internal/venues/constraints"
	"debatetab/internal/venues/handler/mocks"
	"debatetab/internal/venues/models"
	"debatetab/internal/venues/service"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/testutil"
)

type VenuesHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestVenuesHandlerSuite(t *testing.T) {
	suite.Run(t, new(VenuesHandlerSuite))
}

func (s *VenuesHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *VenuesHandlerSuite) TestEdit() {
	s.Run("single round", func() {
		info := &service.EditInfo{
			Round: 3,
			Constraints: constraints.Result{
				Debates: map[domain.DebateID][][]domain.CategoryID{7: {{1, 2}, {3}}},
			},
		}
		s.service.EXPECT().EditInfo(gomock.Any(), "worlds", 3, false).Return(info, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/rounds/3/venues/edit"))

		testutil.AssertStatusOK(s.T(), rr)
		body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
		cons := (*body)["constraints"].(map[string]any)
		s.Equal([]any{[]any{1.0, 2.0}, []any{3.0}}, cons["debates"].(map[string]any)["7"])
	})

	s.Run("concurrent rounds", func() {
		s.service.EXPECT().EditInfo(gomock.Any(), "worlds", 5, true).Return(&service.EditInfo{Round: 5}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/rounds/5/venues/edit-concurrent"))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("bad round seq", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/rounds/x/venues/edit"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("round not found", func() {
		s.service.EXPECT().EditInfo(gomock.Any(), "worlds", 9, false).Return(nil, dErrors.New(dErrors.CodeNotFound, "round not found"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/rounds/9/venues/edit"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}

func (s *VenuesHandlerSuite) TestSaveCategories() {
	s.Run("saves", func() {
		s.service.EXPECT().SaveCategories(gomock.Any(), "worlds", gomock.Any()).
			DoAndReturn(func(_ any, _ string, req *models.SaveCategoriesRequest) (*models.CategoriesSaved, error) {
				s.Require().Len(req.Categories, 1)
				s.Equal(models.DisplayNone, req.Categories[0].DisplayInVenueName)
				return &models.CategoriesSaved{Message: "Saved room category: Quiet"}, nil
			})

		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/venues/categories", map[string]any{
			"categories": []map[string]any{{"name": "Quiet"}},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "message", "Saved room category: Quiet")
	})

	s.Run("rejects blank names before the service", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/venues/categories", map[string]any{
			"categories": []map[string]any{{"name": " "}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPut, "/tournaments/worlds/venues/categories", "{")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func (s *VenuesHandlerSuite) TestSaveConstraints() {
	s.Run("saves", func() {
		s.service.EXPECT().SaveConstraints(gomock.Any(), "worlds", gomock.Any()).
			Return(&models.ConstraintsSaved{Constraints: []*models.VenueConstraint{}, Message: "Saved 1 room constraint."}, nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/venues/constraints", map[string]any{
			"constraints": []map[string]any{{"subject_kind": "team", "subject_id": 4, "category": 2, "priority": 1}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "message", "Saved 1 room constraint.")
	})

	s.Run("unknown subject kind", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/venues/constraints", map[string]any{
			"constraints": []map[string]any{{"subject_kind": "speaker", "subject_id": 4, "category": 2}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("conflict from the service", func() {
		s.service.EXPECT().SaveConstraints(gomock.Any(), "worlds", gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "venue constraint 3 not found"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/venues/constraints", map[string]any{
			"constraints": []map[string]any{{"id": 3, "delete": true}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}

func (s *VenuesHandlerSuite) TestListings() {
	s.service.EXPECT().ListCategories(gomock.Any(), "worlds").Return([]*models.VenueCategory{{ID: 1, Name: "Quiet"}}, nil)
	s.service.EXPECT().ListConstraints(gomock.Any(), "worlds").Return([]*models.VenueConstraint{}, nil)
	s.service.EXPECT().SubjectChoices(gomock.Any(), "worlds").Return([]models.SubjectChoice{{ID: 1, Kind: models.SubjectTeam, Label: "A (Team)"}}, nil)

	for _, path := range []string{
		"/tournaments/worlds/venues/categories",
		"/tournaments/worlds/venues/constraints",
		"/tournaments/worlds/venues/constraints/subjects",
	} {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, path))
		testutil.AssertStatusOK(s.T(), rr)
	}
}

func (s *VenuesHandlerSuite) TestInternalErrorsHideDetail() {
	s.service.EXPECT().ListCategories(gomock.Any(), "worlds").
		Return(nil, dErrors.Wrap(io.ErrUnexpectedEOF, dErrors.CodeInternal, "failed to load venue categories"))
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/venues/categories"))
	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	s.NotContains(rr.Body.String(), "unexpected EOF")
}
