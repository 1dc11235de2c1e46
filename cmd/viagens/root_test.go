package main

import (
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"serve"},
		{"worker"},
		{"ledger", "list"},
		{"ledger", "add"},
		{"ledger", "remove"},
		{"ledger", "total"},
		{"ledger", "quick", "bus"},
		{"ledger", "quick", "flight"},
		{"ledger", "quick", "stay"},
		{"stays"},
		{"trip"},
		{"ask"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if err != nil {
			t.Errorf("Find(%v) error = %v", path, err)
			continue
		}
		if cmd.Name() != path[len(path)-1] {
			t.Errorf("Find(%v) = %q", path, cmd.Name())
		}
	}
}

func TestLongRunningCommandsLogToStdout(t *testing.T) {
	for _, cmd := range []string{"serve", "worker"} {
		c, _, _ := rootCmd.Find([]string{cmd})
		if _, ok := c.Annotations[annotationLogStdout]; !ok {
			t.Errorf("%s should log to stdout", cmd)
		}
	}
	c, _, _ := rootCmd.Find([]string{"ledger", "list"})
	if _, ok := c.Annotations[annotationLogStdout]; ok {
		t.Error("ledger list output would mix with logs")
	}
}

func TestCategoryList(t *testing.T) {
	got := categoryList()
	for _, want := range []string{"VOO", "HOSPEDAGEM", "SAFARI"} {
		if !strings.Contains(got, want) {
			t.Errorf("categoryList() = %q, missing %s", got, want)
		}
	}
}
