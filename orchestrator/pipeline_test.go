package orchestrator

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/NovantaCreativeTeam/pracsi-script/config"
	"github.com/NovantaCreativeTeam/pracsi-script/eaf"
	"github.com/NovantaCreativeTeam/pracsi-script/table"
	"github.com/NovantaCreativeTeam/pracsi-script/transcript"
)

const twoSpeakersEAF = `<ANNOTATION_DOCUMENT>
  <TIME_ORDER>
    <TIME_SLOT TIME_SLOT_ID="ts1" TIME_VALUE="0"/>
    <TIME_SLOT TIME_SLOT_ID="ts2" TIME_VALUE="1000"/>
    <TIME_SLOT TIME_SLOT_ID="ts3" TIME_VALUE="1500"/>
    <TIME_SLOT TIME_SLOT_ID="ts4" TIME_VALUE="2000"/>
  </TIME_ORDER>
  <TIER TIER_ID="Anna" PARTICIPANT="Anna" LINGUISTIC_TYPE_REF="Parlante">
    <ANNOTATION><ALIGNABLE_ANNOTATION ANNOTATION_ID="a1" TIME_SLOT_REF1="ts1" TIME_SLOT_REF2="ts2">
      <ANNOTATION_VALUE>ciao</ANNOTATION_VALUE></ALIGNABLE_ANNOTATION></ANNOTATION>
  </TIER>
  <TIER TIER_ID="Bruno" PARTICIPANT="Bruno" LINGUISTIC_TYPE_REF="Parlante">
    <ANNOTATION><ALIGNABLE_ANNOTATION ANNOTATION_ID="b1" TIME_SLOT_REF1="ts3" TIME_SLOT_REF2="ts4">
      <ANNOTATION_VALUE>ciao a te</ANNOTATION_VALUE></ALIGNABLE_ANNOTATION></ANNOTATION>
  </TIER>
</ANNOTATION_DOCUMENT>`

func testPipeline(t *testing.T) (*Pipeline, *cfg.Root) {
	t.Helper()
	conf, err := cfg.Load("")
	require.NoError(t, err)
	conf.Paths.Outputs = filepath.Join(t.TempDir(), "outputs")

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewPipeline(conf, log), conf
}

func writeInput(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.eaf")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_ExplicitOutput(t *testing.T) {
	p, _ := testPipeline(t)
	out := filepath.Join(t.TempDir(), "nested", "table.csv")

	res, err := p.Run(context.Background(), writeInput(t, twoSpeakersEAF), out)
	require.NoError(t, err)
	assert.Equal(t, out, res.Output)
	assert.Equal(t, table.CSV, res.Format)
	assert.Empty(t, res.SessionID)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, recs, 4)
	assert.Equal(t, transcript.Columns, recs[0])
	assert.Equal(t, []string{"1", "00:00.000", "00:01.000"}, recs[1][:3])
	assert.Equal(t, "(0.50)", recs[2][9])
	assert.Equal(t, "Bruno", recs[3][8])
}

func TestRun_SessionDirAndSummary(t *testing.T) {
	p, conf := testPipeline(t)
	conf.Output.Summary = true
	conf.Output.Format = "json"

	res, err := p.Run(context.Background(), writeInput(t, twoSpeakersEAF), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.SessionID, "session_"))
	assert.Equal(t, filepath.Join(conf.Paths.Outputs, res.SessionID, "session.json"), res.Output)
	assert.FileExists(t, res.Output)

	require.NotEmpty(t, res.SummaryPath)
	b, err := os.ReadFile(res.SummaryPath)
	require.NoError(t, err)
	var sum Summary
	require.NoError(t, json.Unmarshal(b, &sum))
	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 2, sum.Turns)
	assert.Equal(t, 1, sum.Pauses)
	assert.Equal(t, int64(500), sum.PauseTotalMs)
}

func TestRun_OutputDirectory(t *testing.T) {
	p, _ := testPipeline(t)
	dir := t.TempDir()

	res, err := p.Run(context.Background(), writeInput(t, twoSpeakersEAF), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "session.csv"), res.Output)
}

func TestRun_MalformedTimelineLeavesNoArtifact(t *testing.T) {
	p, _ := testPipeline(t)
	broken := strings.Replace(twoSpeakersEAF, `TIME_SLOT_REF2="ts4"`, `TIME_SLOT_REF2="ts9"`, 1)
	dir := t.TempDir()
	out := filepath.Join(dir, "table.csv")

	_, err := p.Run(context.Background(), writeInput(t, broken), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, transcript.ErrMalformedTimeline)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no table and no temp file may remain")
}

func TestConvertReader_FormatOverride(t *testing.T) {
	p, _ := testPipeline(t)
	out := filepath.Join(t.TempDir(), "t.sqlite")

	res, err := p.ConvertReader(context.Background(), strings.NewReader(twoSpeakersEAF), Request{
		Source: "upload.eaf",
		Output: out,
		Format: table.SQLite,
	})
	require.NoError(t, err)
	assert.Equal(t, table.SQLite, res.Format)
	assert.FileExists(t, out)
}

func TestConvertReader_Canceled(t *testing.T) {
	p, _ := testPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := p.ConvertReader(ctx, strings.NewReader(twoSpeakersEAF), Request{
		Source: "x.eaf",
		Output: filepath.Join(dir, "x.csv"),
	})
	assert.ErrorIs(t, err, context.Canceled)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestConvertReader_BadFormat(t *testing.T) {
	p, conf := testPipeline(t)
	conf.Output.Format = "xlsx"
	_, err := p.ConvertReader(context.Background(), strings.NewReader(twoSpeakersEAF), Request{Source: "x.eaf"})
	assert.ErrorIs(t, err, table.ErrUnknownFormat)
}

func TestConvertReader_NotAnEAF(t *testing.T) {
	p, _ := testPipeline(t)
	_, err := p.ConvertReader(context.Background(), strings.NewReader("<html/>"), Request{Source: "x.eaf"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, eaf.ErrNotEAF)
}

func TestRunRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		io.WriteString(w, "Row,Begin\n1,00:00.000\n")
	}))
	defer srv.Close()

	p, _ := testPipeline(t)
	out := filepath.Join(t.TempDir(), "remote.csv")
	res, err := p.RunRemote(context.Background(), srv.URL, writeInput(t, twoSpeakersEAF), out)
	require.NoError(t, err)
	assert.Equal(t, out, res.Output)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Row,Begin\n1,00:00.000\n", string(b))
}

func TestRunRemote_ServerErrorLeavesNoArtifact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "malformed timeline", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	p, _ := testPipeline(t)
	dir := t.TempDir()
	_, err := p.RunRemote(context.Background(), srv.URL, writeInput(t, twoSpeakersEAF), filepath.Join(dir, "x.csv"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
