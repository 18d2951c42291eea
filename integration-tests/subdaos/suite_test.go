package integration_test

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	integration "github.com/helium/helium-ops/integration-tests/subdaos"
)

func Test_Suite(t *testing.T) {
	if os.Getenv(integration.RPCURLEnv) == "" {
		t.Skipf("%s not set, no provisioned validator to run against", integration.RPCURLEnv)
	}
	RegisterFailHandler(Fail)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	RunSpecs(t, "Sub-DAOs")
}
