package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"debatetab/internal/api/handler/mocks"
	"debatetab/internal/api/service"
	bmodels "debatetab/internal/breaks/models"
	rmodels "debatetab/internal/results/models"
	tmodels "debatetab/internal/tournaments/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/platform/middleware/admin"
	"debatetab/pkg/platform/middleware/version"
	"debatetab/pkg/testutil"
)

const adminToken = "s3cret"

type APIHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestAPIHandlerSuite(t *testing.T) {
	suite.Run(t, new(APIHandlerSuite))
}

func (s *APIHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger)

	s.router = chi.NewRouter()
	s.router.Use(admin.ResolveRole(adminToken))
	s.router.Get("/api", h.HandleRoot)
	s.router.Route(domain.APIVersionV1.Path(), func(v1 chi.Router) {
		v1.Use(version.ExtractVersion(domain.APIVersionV1))
		h.Register(v1)
		v1.Group(func(r chi.Router) {
			r.Use(admin.RequireAdmin(logger))
			h.RegisterAdmin(r)
		})
	})
}

func (s *APIHandlerSuite) get(path string, asAdmin bool) *http.Request {
	req := testutil.NewRequest(s.T(), http.MethodGet, path)
	if asAdmin {
		req.Header.Set(admin.HeaderName, adminToken)
	}
	return req
}

func (s *APIHandlerSuite) TestRoots() {
	s.service.EXPECT().Root().Return(&service.Root{
		Links:       map[string]string{"v1": "/api/v1"},
		TimeZone:    "Australia/Melbourne",
		Version:     "0.9.0",
		VersionName: "Kookaburra",
	})
	rr := testutil.DoRequest(s.router, s.get("/api", false))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "timezone", "Australia/Melbourne")
	testutil.AssertJSONContains(s.T(), rr, "version_name", "Kookaburra")

	s.service.EXPECT().V1Root().Return(&service.VersionRoot{Links: map[string]string{"tournaments": "/api/v1/tournaments"}})
	rr = testutil.DoRequest(s.router, s.get("/api/v1/", false))
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("v1", rr.Header().Get("API-Version"))
	testutil.AssertJSONHasKey(s.T(), rr, "_links")
}

func (s *APIHandlerSuite) TestTournaments() {
	s.service.EXPECT().ListTournaments(gomock.Any()).Return([]*tmodels.Tournament{{ID: 1, Slug: "worlds"}}, nil)
	rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments", false))
	testutil.AssertStatusOK(s.T(), rr)
	list := testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
	s.Len(*list, 1)

	s.service.EXPECT().Tournament(gomock.Any(), "nationals").Return(nil, dErrors.New(dErrors.CodeNotFound, "tournament not found"))
	rr = testutil.DoRequest(s.router, s.get("/api/v1/tournaments/nationals", false))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
}

func (s *APIHandlerSuite) TestMotions() {
	s.Run("private", func() {
		s.service.EXPECT().ListMotions(gomock.Any(), "worlds").Return(nil, dErrors.New(dErrors.CodeUnauthorized, "motions are not public"))
		rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/motions", false))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
	})

	s.Run("detail", func() {
		s.service.EXPECT().Motion(gomock.Any(), "worlds", domain.MotionID(3)).Return(&tmodels.Motion{ID: 3, Text: "THW"}, nil)
		rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/motions/3", false))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "text", "THW")
	})

	s.Run("bad id", func() {
		rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/motions/abc", false))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func (s *APIHandlerSuite) TestRounds() {
	s.Run("public detail", func() {
		s.service.EXPECT().Round(gomock.Any(), "worlds", 2).Return(&tmodels.Round{ID: 8, Seq: 2}, nil)
		rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/rounds/2", false))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("patch needs admin", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/tournaments/worlds/rounds/2", map[string]any{"motions_released": true})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("patch", func() {
		s.service.EXPECT().PatchRound(gomock.Any(), "worlds", 2, gomock.Any()).
			DoAndReturn(func(_ any, _ string, _ int, patch *tmodels.RoundPatch) (*tmodels.Round, error) {
				s.Require().NotNil(patch.MotionsReleased)
				s.Nil(patch.Name)
				return &tmodels.Round{ID: 8, Seq: 2, MotionsReleased: *patch.MotionsReleased}, nil
			})
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/tournaments/worlds/rounds/2", map[string]any{"motions_released": true})
		req.Header.Set(admin.HeaderName, adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "motions_released", true)
	})

	s.Run("put validates", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/api/v1/tournaments/worlds/rounds/2", map[string]any{"seq": 2, "name": "R2"})
		req.Header.Set(admin.HeaderName, adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *APIHandlerSuite) TestSpeakerCategories() {
	s.service.EXPECT().SpeakerEligibility(gomock.Any(), "worlds", domain.SpeakerCatID(4)).
		Return(nil, dErrors.New(dErrors.CodeUnauthorized, "speaker category is private"))
	rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/speaker-categories/4/eligibility", false))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))

	s.service.EXPECT().SpeakerEligibility(gomock.Any(), "worlds", domain.SpeakerCatID(4)).
		Return(&service.SpeakerEligibility{Slug: "esl", SpeakerIDs: []domain.SpeakerID{1, 2}}, nil)
	rr = testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/speaker-categories/4/eligibility", true))
	testutil.AssertStatusOK(s.T(), rr)
	body := testutil.UnmarshalResponse[map[string]any](s.T(), rr)
	s.Len(*body, 2)
	s.Len((*body)["speaker_ids"], 2)
}

func (s *APIHandlerSuite) TestBreaks() {
	s.Run("eligibility is admin only", func() {
		rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/break-categories/1/eligibility", false))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)

		s.service.EXPECT().BreakEligibility(gomock.Any(), "worlds", domain.BreakCategoryID(1)).
			Return(&service.TeamEligibility{Slug: "open", TeamIDs: []domain.TeamID{1, 2}}, nil)
		rr = testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/break-categories/1/eligibility", true))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "slug", "open")
	})

	s.Run("public break", func() {
		s.service.EXPECT().BreakingTeams(gomock.Any(), "worlds", domain.BreakCategoryID(1)).
			Return([]*bmodels.BreakingTeam{{TeamID: 1, Rank: 1}}, nil)
		rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/break-categories/1/break", false))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("generate", func() {
		s.service.EXPECT().GenerateBreak(gomock.Any(), "worlds", domain.BreakCategoryID(1)).
			Return([]*bmodels.BreakingTeam{{TeamID: 1, Rank: 1}, {TeamID: 2, Rank: 2}}, nil)
		req := testutil.NewRequest(s.T(), http.MethodPost, "/api/v1/tournaments/worlds/break-categories/1/break")
		req.Header.Set(admin.HeaderName, adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		teams := testutil.UnmarshalResponse[[]map[string]any](s.T(), rr)
		s.Len(*teams, 2)
	})

	s.Run("delete", func() {
		s.service.EXPECT().DeleteBreak(gomock.Any(), "worlds", domain.BreakCategoryID(1)).Return(nil)
		req := testutil.NewRequest(s.T(), http.MethodDelete, "/api/v1/tournaments/worlds/break-categories/1/break")
		req.Header.Set(admin.HeaderName, adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("remark", func() {
		s.service.EXPECT().UpdateBreak(gomock.Any(), "worlds", domain.BreakCategoryID(1), &bmodels.RemarkRequest{Team: 2, Remark: bmodels.RemarkCapped}).
			Return([]*bmodels.BreakingTeam{}, nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/tournaments/worlds/break-categories/1/break", map[string]any{"team": 2, "remark": "C"})
		req.Header.Set(admin.HeaderName, adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("unknown remark", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, "/api/v1/tournaments/worlds/break-categories/1/break", map[string]any{"team": 2, "remark": "zz"})
		req.Header.Set(admin.HeaderName, adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})
}

func (s *APIHandlerSuite) TestBallots() {
	rr := testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/rounds/1/pairings/12/ballots", false))
	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)

	s.service.EXPECT().Ballots(gomock.Any(), "worlds", 1, domain.DebateID(12)).
		Return([]*rmodels.BallotSubmission{{ID: 1, DebateID: 12, Version: 1}}, nil)
	rr = testutil.DoRequest(s.router, s.get("/api/v1/tournaments/worlds/rounds/1/pairings/12/ballots", true))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *APIHandlerSuite) TestInternalErrorsHideDetail() {
	s.service.EXPECT().ListInstitutions(gomock.Any()).
		Return(nil, dErrors.Wrap(io.ErrUnexpectedEOF, dErrors.CodeInternal, "failed to load institutions"))
	rr := testutil.DoRequest(s.router, s.get("/api/v1/institutions", false))
	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	s.NotContains(rr.Body.String(), "unexpected EOF")
}
