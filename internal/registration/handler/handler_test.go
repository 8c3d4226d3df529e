package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	pmodels "debatetab/internal/participants/models"
	"debatetab/internal/registration/handler/mocks"
	"debatetab/internal/registration/models"
	"debatetab/internal/registration/service"
	"debatetab/internal/tables"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/testutil"
)

type RegistrationHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestRegistrationHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistrationHandlerSuite))
}

func (s *RegistrationHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	h := New(s.service, logger)
	h.Register(s.router)
	h.RegisterCoach(s.router)
	h.RegisterAdmin(s.router)
}

func sampleTable() *tables.Table {
	return tables.New("Responses", "name").
		AddTextColumn(tables.Header{Key: "name", Title: "Name"}, []string{"Ada"})
}

func (s *RegistrationHandlerSuite) TestRegisterTeam() {
	s.Run("created", func() {
		s.service.EXPECT().RegisterTeam(gomock.Any(), "worlds", gomock.Any()).
			DoAndReturn(func(_ any, _ string, req *models.TeamRegistrationRequest) (*models.Registered, error) {
				s.Equal("Gold", req.Reference, "request is trimmed")
				s.Require().Len(req.Speakers, 1)
				return &models.Registered{ID: 4, Name: "Gold", MissingSpeakers: 1, Messages: []string{"Your team Gold has been registered!"}}, nil
			})
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/team", map[string]any{
			"reference": " Gold ",
			"speakers":  []map[string]any{{"name": "Sam"}},
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		body := testutil.UnmarshalResponse[models.Registered](s.T(), rr)
		s.Equal(1, body.MissingSpeakers)
	})

	s.Run("speaker without a name", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/team", map[string]any{
			"speakers": []map[string]any{{"name": " "}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("registration closed", func() {
		s.service.EXPECT().RegisterTeam(gomock.Any(), "worlds", gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "team registration is not open"))
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/team", map[string]any{})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
	})
}

func (s *RegistrationHandlerSuite) TestRegisterInstitutionAndAdjudicator() {
	s.service.EXPECT().RegisterInstitution(gomock.Any(), "worlds", gomock.Any()).
		Return(&models.Registered{ID: 1, Name: "Harvard", URLKey: "abc12345"}, nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/institution", map[string]any{
		"name": "Harvard", "coach": map[string]any{"name": "Coach"},
	}))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	testutil.AssertJSONContains(s.T(), rr, "url_key", "abc12345")

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/institution", map[string]any{
		"name": "Harvard",
	}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))

	s.service.EXPECT().RegisterAdjudicator(gomock.Any(), "worlds", gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "registration link not found"))
	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/adjudicator", map[string]any{
		"name": "Ada", "coach_key": "nope",
	}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
}

func (s *RegistrationHandlerSuite) TestRegisterSpeaker() {
	s.service.EXPECT().RegisterSpeaker(gomock.Any(), "worlds", domain.TeamID(9), gomock.Any()).
		Return(&models.Registered{ID: 12, Name: "Jo"}, nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/teams/9/speaker", map[string]any{
		"name": "Jo",
	}))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/register/teams/x/speaker", map[string]any{
		"name": "Jo",
	}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
}

func (s *RegistrationHandlerSuite) TestTables() {
	s.Run("json", func() {
		s.service.EXPECT().AdjudicatorTable(gomock.Any(), "worlds").Return(sampleTable(), nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/adjudicators"))
		testutil.AssertStatusOK(s.T(), rr)
		body := testutil.UnmarshalResponse[map[string]map[string]any](s.T(), rr)
		s.Equal("name", (*body)["table"]["sort_key"])
	})

	s.Run("xlsx", func() {
		s.service.EXPECT().TeamTable(gomock.Any(), "worlds").Return(sampleTable(), nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/teams?format=xlsx"))
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal(tables.ContentTypeXLSX, rr.Header().Get("Content-Type"))
		s.Contains(rr.Header().Get("Content-Disposition"), "worlds-teams.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
		s.Require().NoError(err)
		defer f.Close()
		v, err := f.GetCellValue("Responses", "A2")
		s.Require().NoError(err)
		s.Equal("Ada", v)
	})

	s.Run("institutions with totals", func() {
		s.service.EXPECT().InstitutionTable(gomock.Any(), "worlds").
			Return(&service.InstitutionReport{Table: sampleTable(), Totals: service.InstitutionTotals{TeamsRequested: 3}}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/institutions"))
		testutil.AssertStatusOK(s.T(), rr)
		body := testutil.UnmarshalResponse[map[string]map[string]any](s.T(), rr)
		s.Equal(3.0, (*body)["totals"]["teams_requested"])
	})

	s.Run("broken table export", func() {
		broken := sampleTable().AddTextColumn(tables.Header{Key: "x", Title: "X"}, nil)
		s.service.EXPECT().TeamTable(gomock.Any(), "worlds").Return(broken, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/teams?format=xlsx"))
		testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	})
}

func (s *RegistrationHandlerSuite) TestCoachLanding() {
	landing := func() *service.CoachLanding {
		return &service.CoachLanding{
			Coach:        &pmodels.Coach{Name: "Kim"},
			Institution:  &pmodels.Institution{Name: "Melbourne", Code: "Melb"},
			Adjudicators: tables.New("Adjudicators", "name").AddTextColumn(tables.Header{Key: "name", Title: "Name"}, []string{"Ada"}),
			Teams:        tables.New("Teams", "name").AddTextColumn(tables.Header{Key: "name", Title: "Team"}, []string{"Melb A"}),
		}
	}

	s.Run("json", func() {
		s.service.EXPECT().CoachLanding(gomock.Any(), "worlds", "k3y").Return(landing(), nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/coach/k3y"))
		testutil.AssertStatusOK(s.T(), rr)
		body := testutil.UnmarshalResponse[map[string]map[string]any](s.T(), rr)
		s.Equal("Kim", (*body)["coach"]["name"])
		s.Equal("Teams", (*body)["teams"]["title"])
		s.Equal("Adjudicators", (*body)["adjudicators"]["title"])
	})

	s.Run("xlsx has one sheet per table", func() {
		s.service.EXPECT().CoachLanding(gomock.Any(), "worlds", "k3y").Return(landing(), nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/coach/k3y?format=xlsx"))
		testutil.AssertStatusOK(s.T(), rr)
		s.Contains(rr.Header().Get("Content-Disposition"), "worlds-coach.xlsx")

		f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
		s.Require().NoError(err)
		defer f.Close()
		s.Equal([]string{"Adjudicators", "Teams"}, f.GetSheetList())
		v, err := f.GetCellValue("Teams", "A2")
		s.Require().NoError(err)
		s.Equal("Melb A", v)
	})

	s.Run("unknown key", func() {
		s.service.EXPECT().CoachLanding(gomock.Any(), "worlds", "nope").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "registration link not found"))
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/coach/nope"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}

func (s *RegistrationHandlerSuite) TestAllocations() {
	s.service.EXPECT().SaveAllocations(gomock.Any(), "worlds", gomock.Any()).
		Return(&models.AllocationsSaved{Message: "Successfully modified institution allocations"}, nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/registration/institutions/allocations", map[string]any{
		"allocations": []map[string]any{{"institution": 1, "teams_allocated": 2}},
	}))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "message", "Successfully modified institution allocations")

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/tournaments/worlds/registration/institutions/allocations", map[string]any{
		"allocations": []map[string]any{{"institution": 1, "teams_allocated": -1}},
	}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
}

func (s *RegistrationHandlerSuite) TestQuestions() {
	s.Run("list by plural kind", func() {
		s.service.EXPECT().Questions(gomock.Any(), "worlds", models.QuestionSpeaker).Return([]*models.Question{}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/questions/speakers"))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("unknown kind", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/tournaments/worlds/registration/questions/venues"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("save validates questions", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/registration/questions/team", map[string]any{
			"questions": []map[string]any{{"name": "Diet", "text": "?", "answer_type": "zz"}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
	})

	s.Run("save", func() {
		s.service.EXPECT().SaveQuestions(gomock.Any(), "worlds", models.QuestionTeam, gomock.Any()).
			Return(&models.QuestionsSaved{Questions: []*models.Question{}, Message: "Questions for teams were successfully saved."}, nil)
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/tournaments/worlds/registration/questions/team", map[string]any{
			"questions": []map[string]any{{"name": "Diet", "text": "?", "answer_type": "t"}},
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "message", "Questions for teams were successfully saved.")
	})
}
