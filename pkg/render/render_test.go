package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"diskinfo/pkg/diskstat"
	"diskinfo/pkg/timeline"
)

// RenderTestSuite tests panel layout with colors disabled
type RenderTestSuite struct {
	suite.Suite
	renderer *Renderer
	out      *bytes.Buffer
	entry    timeline.Entry
}

// SetupTest creates a plain renderer and a placeholder entry
func (s *RenderTestSuite) SetupTest() {
	s.out = &bytes.Buffer{}
	s.renderer = NewRenderer(ColorNever, s.out)
	s.entry = timeline.Entry{
		Date:  time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
		Stats: diskstat.Placeholder,
	}
}

// TestWindow tests the detailed panel
func (s *RenderTestSuite) TestWindow() {
	s.Require().NoError(s.renderer.Window(s.out, diskstat.Placeholder))

	output := s.out.String()
	s.Contains(output, "Disk Info")
	s.Contains(output, "Total Space:")
	s.Contains(output, "Used Space:")
	s.Contains(output, "Free Space:")
	s.Contains(output, "500 GB")
	s.Contains(output, "300 GB")
	s.Contains(output, "200 GB")
	s.Contains(output, "[############--------]")
	s.Contains(output, "60% used")
	s.NotContains(output, "\x1b[")
}

// TestWindowRowAlignment tests that values are right-aligned to the panel width
func (s *RenderTestSuite) TestWindowRowAlignment() {
	row := s.renderer.row("Total Space:", "500 GB", nil)
	s.Len(row, windowWidth+1)
	s.Equal("Total Space:                      500 GB\n", row)
}

// TestSmall tests the compact widget
func (s *RenderTestSuite) TestSmall() {
	s.Require().NoError(s.renderer.Small(s.out, s.entry))

	output := s.out.String()
	s.Contains(output, "[######----] 60%")
	s.Contains(output, "used")
	s.Contains(output, "200 GB free")
	s.Contains(output, "updated 09:30")
	s.NotContains(output, "Total")
}

// TestMedium tests the wide widget
func (s *RenderTestSuite) TestMedium() {
	s.Require().NoError(s.renderer.Medium(s.out, s.entry))

	output := s.out.String()
	s.Contains(output, "Disk Storage")
	s.Contains(output, "[############--------] 60% used")
	s.Contains(output, "Used:  300 GB")
	s.Contains(output, "Free:  200 GB")
	s.Contains(output, "Total: 500 GB")
	s.Contains(output, "updated 09:30")
}

// TestWidgetDispatch tests family selection and the small fallback
func (s *RenderTestSuite) TestWidgetDispatch() {
	var small, medium, unknown bytes.Buffer
	s.Require().NoError(s.renderer.Widget(&small, FamilySmall, s.entry))
	s.Require().NoError(s.renderer.Widget(&medium, FamilyMedium, s.entry))
	s.Require().NoError(s.renderer.Widget(&unknown, Family("large"), s.entry))

	s.Contains(medium.String(), "Disk Storage")
	s.NotContains(small.String(), "Disk Storage")
	s.Equal(small.String(), unknown.String())
}

// TestParseFamily tests widget size parsing
func (s *RenderTestSuite) TestParseFamily() {
	family, err := ParseFamily("small")
	s.NoError(err)
	s.Equal(FamilySmall, family)

	family, err = ParseFamily(" Medium ")
	s.NoError(err)
	s.Equal(FamilyMedium, family)

	_, err = ParseFamily("large")
	s.ErrorIs(err, ErrUnknownFamily)

	s.Equal([]Family{FamilySmall, FamilyMedium}, Families())
}

// TestBar tests progress bar fill and clamping
func (s *RenderTestSuite) TestBar() {
	testCases := []struct {
		percent  float64
		expected string
	}{
		{0, "[----------]"},
		{9.99, "[----------]"},
		{10, "[#---------]"},
		{60, "[######----]"},
		{100, "[##########]"},
		{150, "[##########]"},
		{-20, "[----------]"},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, bar(tc.percent, widgetBarWidth), "percent %v", tc.percent)
	}
}

// TestColors tests that forced colors emit escapes and auto mode stays plain off a terminal
func (s *RenderTestSuite) TestColors() {
	var colored, auto bytes.Buffer
	s.Require().NoError(NewRenderer(ColorAlways, &colored).Small(&colored, s.entry))
	s.Require().NoError(NewRenderer(ColorAuto, &auto).Small(&auto, s.entry))

	s.Contains(colored.String(), "\x1b[")
	s.NotContains(auto.String(), "\x1b[")
}

// TestAccentBySeverity tests the threshold colors
func (s *RenderTestSuite) TestAccentBySeverity() {
	r := NewRenderer(ColorAlways, &bytes.Buffer{})

	s.Contains(r.accent(diskstat.SeverityCritical, "x"), "\x1b[31m")
	s.Contains(r.accent(diskstat.SeverityWarning, "x"), "\x1b[33m")
	s.Contains(r.accent(diskstat.SeverityNormal, "x"), "\x1b[34m")
}

// failingWriter rejects every write
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

// TestWriteErrors tests that writer failures are returned
func (s *RenderTestSuite) TestWriteErrors() {
	s.Error(s.renderer.Window(failingWriter{}, diskstat.Placeholder))
	s.Error(s.renderer.Small(failingWriter{}, s.entry))
	s.Error(s.renderer.Medium(failingWriter{}, s.entry))
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}
