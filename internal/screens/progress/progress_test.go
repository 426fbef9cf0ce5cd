package progress

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/zxyasa/ai-zhao-tutor/internal/api"
	"github.com/zxyasa/ai-zhao-tutor/internal/fallback"
	mock_api "github.com/zxyasa/ai-zhao-tutor/internal/mocks/api"
)

var astrid = api.Student{ID: "astrid_zhao", Name: "Astrid", Avatar: "unicorn"}

func deliver(t *testing.T, s *Screen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestMasteryAndBadges(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	gw.EXPECT().Mastery(gomock.Any(), "astrid_zhao").Return([]api.Mastery{{
		SkillID:         "yr3_frac_compare_001",
		TotalAttempts:   8,
		CorrectAttempts: 6,
		MasteryScore:    0.75,
	}}, nil)
	gw.EXPECT().Achievements(gomock.Any(), "astrid_zhao").Return([]api.Achievement{{
		BadgeKey:    "first_correct",
		Title:       "First Correct",
		Description: "Answered a question correctly",
	}}, nil)

	s := New(gw, astrid, nil)
	assert.Equal(t, "Astrid's Progress", s.Title())
	deliver(t, s, s.Init())

	view := s.View(100, 30)
	for _, want := range []string{"yr3_frac_compare_001", "75%", "Proficient", "6/8", "First Correct"} {
		assert.Contains(t, view, want)
	}
}

func TestEmptyProgress(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	gw.EXPECT().Mastery(gomock.Any(), "astrid_zhao").Return(nil, nil)
	gw.EXPECT().Achievements(gomock.Any(), "astrid_zhao").Return(nil, nil)

	s := New(gw, astrid, nil)
	deliver(t, s, s.Init())

	view := s.View(100, 30)
	assert.Contains(t, view, "No practice yet")
	assert.Contains(t, view, "No badges yet")
	assert.NotContains(t, view, fallback.BadgesUnavailable)
}

func TestBadgeFailureShowsAdvisory(t *testing.T) {
	gw := mock_api.NewMockGateway(gomock.NewController(t))
	gw.EXPECT().Mastery(gomock.Any(), "astrid_zhao").Return(nil, &api.ServerError{StatusCode: 500})
	gw.EXPECT().Achievements(gomock.Any(), "astrid_zhao").Return(nil, errors.New("refused"))

	s := New(gw, astrid, nil)
	deliver(t, s, s.Init())

	view := s.View(100, 30)
	assert.Contains(t, view, fallback.BadgesUnavailable)
	assert.Contains(t, view, "Server error: HTTP 500")
	assert.NotContains(t, view, "No badges yet")
}
