package proxy_test

import (
	"time"

	"github.com/icecave/relay/proxy"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metrics", func() {
	It("records offsets from the start time", func() {
		var subject proxy.Metrics
		subject.Start()
		Expect(subject.FirstByte).To(BeZero())
		Expect(subject.LastByte).To(BeZero())

		time.Sleep(time.Millisecond)
		subject.MarkFirstByte()
		subject.MarkLastByte()

		Expect(subject.FirstByte).To(BeNumerically(">", 0))
		Expect(subject.LastByte).To(BeNumerically(">=", subject.FirstByte))
	})

	It("converts durations to milliseconds", func() {
		Expect(proxy.Milliseconds(1500 * time.Microsecond)).To(Equal(1.5))
	})
})
