package main

import (
	"github.com/icecave/relay/health"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

type fakeChecker struct {
	Status health.Status
}

func (checker *fakeChecker) Check() health.Status {
	return checker.Status
}

var _ = Describe("run", func() {
	DescribeTable(
		"it exits with a code matching the health-check result",
		func(isHealthy bool, code int) {
			checker := &fakeChecker{
				health.Status{IsHealthy: isHealthy, Message: "<message>"},
			}
			Expect(run(checker)).To(Equal(code))
		},
		Entry("healthy", true, 0),
		Entry("unhealthy", false, 1),
	)
})
