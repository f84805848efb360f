package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigInvalidConfigExits(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config_*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("iterations: -5\n")
	f.Close()

	oldCfgFile := cfgFile
	oldExit := exit
	defer func() {
		cfgFile = oldCfgFile
		exit = oldExit
	}()

	exitCode := -1
	exit = func(code int) { exitCode = code }

	cfgFile = f.Name()
	initConfig()

	assert.Equal(t, 1, exitCode, "invalid configuration must exit non-zero")
}

func TestInitConfigValidConfig(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "config_*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("iterations: 42\n")
	f.Close()

	oldCfgFile := cfgFile
	oldExit := exit
	defer func() {
		cfgFile = oldCfgFile
		exit = oldExit
	}()

	exitCode := -1
	exit = func(code int) { exitCode = code }

	cfgFile = f.Name()
	initConfig()

	assert.Equal(t, -1, exitCode)
	assert.Equal(t, 42, cfg.Iterations)
}

func TestExecutePanicRecovery(t *testing.T) {
	panicCmd := &cobra.Command{
		Use: "panic-test",
		Run: func(cmd *cobra.Command, args []string) {
			panic("simulated panic")
		},
	}
	rootCmd.AddCommand(panicCmd)
	defer rootCmd.RemoveCommand(panicCmd)

	oldExit := exit
	exitCode := -1
	exit = func(code int) { exitCode = code }
	defer func() { exit = oldExit }()

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"gamebench", "panic-test"}

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Panic reached test scope: %v", r)
			}
		}()
		Execute()
	}()

	assert.Equal(t, 1, exitCode, "Execute should exit(1) on panic")
}
