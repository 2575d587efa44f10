package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/arena/pkg/arenaerrors"
	"github.com/ajitpratap0/arena/pkg/config"
	"github.com/ajitpratap0/arena/pkg/testutil"
)

type cliSuite struct {
	testutil.Suite
}

func TestCLI(t *testing.T) {
	suite.Run(t, new(cliSuite))
}

func (s *cliSuite) execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(s.Context())
	return out.String(), err
}

func (s *cliSuite) TestVersion() {
	out, err := s.execute("version")
	s.Require().NoError(err)
	s.True(strings.HasPrefix(out, "Arena v"+version+"\n"))
}

func (s *cliSuite) TestRunList() {
	out, err := s.execute("run", "--container", "list", "--capacity", "5", "--size", "5")
	s.Require().NoError(err)
	s.Equal("Pooled list data printed:\n1. Value: 1\n2. Value: 1\n3. Value: 2\n4. Value: 6\n5. Value: 24\n\n", out)
}

func (s *cliSuite) TestRunExhaustedFails() {
	out, err := s.execute("run", "--container", "list", "--capacity", "2", "--size", "3")
	s.Require().Error(err)
	s.Contains(err.Error(), "allocation exhausted")
	s.Contains(out, "2. Value: 1\n\n")
}

func (s *cliSuite) TestRunRejectsBadFlags() {
	_, err := s.execute("run", "--size", "40")
	s.True(arenaerrors.IsType(err, arenaerrors.ErrorTypeConfig))
}

func (s *cliSuite) TestRunConfigFileWithOverride() {
	cfgPath := s.WriteFile("arena.yaml", []byte("workload:\n  container: map\n  capacity: 3\n  size: 3\n"))
	reportPath := s.Path("report.json")

	out, err := s.execute("run", "--config", cfgPath, "--size", "2", "--report", reportPath)
	s.Require().NoError(err)
	s.Equal("Pooled map data printed:\nKey: 0 Value: 1\nKey: 1 Value: 1\n\n", out)

	data, err := os.ReadFile(reportPath)
	s.Require().NoError(err)
	var report struct {
		Capacity uint `json:"capacity"`
		Size     uint `json:"size"`
	}
	s.Require().NoError(json.Unmarshal(data, &report))
	s.Equal(uint(3), report.Capacity)
	s.Equal(uint(2), report.Size)
}

func (s *cliSuite) TestRunLogsThroughGlobalLogger() {
	logPath := s.Path("arena.log")
	cfgPath := s.WriteFile("arena.yaml", []byte("workload:\n  container: list\n  capacity: 2\n  size: 2\n"+
		"logging:\n  level: debug\n  output_paths: [\""+logPath+"\"]\n"))

	_, err := s.execute("run", "--config", cfgPath, "--report", s.Path("report.json"))
	s.Require().NoError(err)

	data, err := os.ReadFile(logPath)
	s.Require().NoError(err)
	logs := string(data)
	s.Contains(logs, `"message":"configuration resolved"`)
	s.Contains(logs, `"message":"report written"`)
	s.Contains(logs, `"version":"`+version+`"`)
}

func (s *cliSuite) TestConfigCommandWritesLoadableDefaults() {
	path := s.Path("arena.yaml")
	out, err := s.execute("config", "--output", path)
	s.Require().NoError(err)
	s.Contains(out, path)

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Equal(config.NewDefault(), cfg)
}

func (s *cliSuite) TestRunWritesProfiles() {
	cpu := s.Path("cpu.prof")
	mem := s.Path("mem.prof")

	_, err := s.execute("run", "--container", "builtin", "--cpuprofile", cpu, "--memprofile", mem)
	s.Require().NoError(err)
	for _, p := range []string{cpu, mem} {
		info, err := os.Stat(p)
		s.Require().NoError(err)
		s.NotZero(info.Size(), p)
	}
}
