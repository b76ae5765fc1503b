// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package supervisor

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surrealabs/sdbeditor/internal/config"
)

func testPaths() config.SupervisorPaths {
	return config.SupervisorPaths{
		AuthBin:   "/opt/acore/bin/authserver",
		WorldBin:  "/opt/acore/bin/worldserver",
		ArmoryBin: "/opt/acore/bin/armoryserver",
		LogsDir:   "/tmp/sdbeditor-logs",
	}
}

func TestServices_ListsAllThree(t *testing.T) {
	assert.ElementsMatch(t, []Service{ServiceAuth, ServiceWorld, ServiceArmory}, Services())
}

func TestService_Valid(t *testing.T) {
	assert.True(t, ServiceAuth.valid())
	assert.True(t, ServiceWorld.valid())
	assert.True(t, ServiceArmory.valid())
	assert.False(t, Service("eventserver").valid())
}

func TestSupervisor_BinPath(t *testing.T) {
	sv := New(testPaths())

	bin, err := sv.binPath(ServiceAuth)
	require.NoError(t, err)
	assert.Equal(t, "/opt/acore/bin/authserver", bin)

	bin, err = sv.binPath(ServiceWorld)
	require.NoError(t, err)
	assert.Equal(t, "/opt/acore/bin/worldserver", bin)

	_, err = sv.binPath(Service("bogus"))
	assert.Error(t, err)
}

func TestSupervisor_PatternDefaultsToServiceName(t *testing.T) {
	sv := New(testPaths())
	assert.Equal(t, "auth", sv.pattern(ServiceAuth))
	assert.Equal(t, "world", sv.pattern(ServiceWorld))
}

func TestSupervisor_PatternUsesConfiguredOverride(t *testing.T) {
	paths := testPaths()
	paths.ProcessPatterns = map[string]string{"auth": "authserver --realm 1"}
	sv := New(paths)

	assert.Equal(t, "authserver --realm 1", sv.pattern(ServiceAuth))
	assert.Equal(t, "world", sv.pattern(ServiceWorld))
}

func TestSupervisor_StatusRejectsUnknownService(t *testing.T) {
	sv := New(testPaths())
	_, err := sv.Status(Service("bogus"))
	assert.Error(t, err)
}

func TestSupervisor_StartRejectsUnconfiguredBinary(t *testing.T) {
	sv := New(config.SupervisorPaths{LogsDir: "/tmp/sdbeditor-logs"})
	_, err := sv.Start(ServiceAuth)
	assert.Error(t, err)
}

func TestFindPIDs_MatchesOwnTestProcess(t *testing.T) {
	self := os.Args[0]
	pids, err := findPIDs(self)
	require.NoError(t, err)
	assert.Contains(t, pids, os.Getpid())
}

func TestFindPIDs_NoMatchesForUnlikelyPattern(t *testing.T) {
	pids, err := findPIDs("totally-unlikely-process-name-xyz123")
	require.NoError(t, err)
	assert.Empty(t, pids)
}

func TestSignalTerm_NonexistentProcessIsNotAnError(t *testing.T) {
	// A pid in this range should not correspond to a live process.
	pid, err := strconv.Atoi("2000000000")
	require.NoError(t, err)
	err = signalTerm(pid)
	assert.NoError(t, err)
}
