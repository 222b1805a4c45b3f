package service

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/hexlab-tools/hexvalidate/domain"
	"github.com/hexlab-tools/hexvalidate/internal/constants"
)

// junitTestSuite is the root element consumed by CI dashboards
type junitTestSuite struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Skipped  int             `xml:"skipped,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string        `xml:"name,attr"`
	Time    string        `xml:"time,attr"`
	Failure *junitFailure `xml:"failure,omitempty"`
	Skipped *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",cdata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

// JUnitFormatter renders the run as a single JUnit test suite so CI
// systems can surface checks as test cases
type JUnitFormatter struct{}

// NewJUnitFormatter creates a JUnit formatter
func NewJUnitFormatter() *JUnitFormatter {
	return &JUnitFormatter{}
}

// Write emits the testsuite document. Failing checks carry their
// findings in a CDATA failure body; warning checks are marked skipped
// with a "warning" message so they stay visible without failing the
// build.
func (f *JUnitFormatter) Write(writer io.Writer, summary *Summary, results []*domain.CheckResult) error {
	suite := junitTestSuite{
		Name:  constants.JUnitSuiteName,
		Tests: len(results),
	}

	var totalMS int64
	for _, result := range results {
		totalMS += result.DurationMS
		tc := junitTestCase{
			Name: result.Name,
			Time: formatSeconds(result.DurationMS),
		}
		switch result.Status {
		case domain.StatusFail:
			suite.Failures++
			tc.Failure = &junitFailure{
				Message: fmt.Sprintf("%d finding(s)", len(result.Findings)),
				Body:    findingsBody(result.Findings),
			}
		case domain.StatusWarn:
			tc.Skipped = &junitSkipped{Message: "warning"}
		case domain.StatusSkipped:
			suite.Skipped++
			tc.Skipped = &junitSkipped{Message: result.Stdout}
		}
		suite.Cases = append(suite.Cases, tc)
	}
	suite.Time = formatSeconds(totalMS)

	if _, err := io.WriteString(writer, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suite); err != nil {
		return err
	}
	_, err := io.WriteString(writer, "\n")
	return err
}

func findingsBody(findings []domain.Finding) string {
	var sb strings.Builder
	for _, f := range findings {
		sb.WriteString(location(f))
		sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", f.Severity, f.Code, f.Message))
	}
	return sb.String()
}

func formatSeconds(ms int64) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000.0)
}
