package cmd_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/icecave/relay/cmd"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var variables = []string{
	"ADDRESS",
	"PORT",
	"PROXY_PROTOCOL",
	"SEQUENTIAL",
	"CONNECT_TIMEOUT",
	"UPSTREAM_TIMEOUT",
	"CHECK_TIMEOUT",
	"DNS_SERVER",
	"DNS_TIMEOUT",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"JOURNAL_KEY",
	"JOURNAL_MAX_LEN",
}

var _ = Describe("LoadConfig", func() {
	var dir string

	BeforeEach(func() {
		for _, v := range variables {
			os.Unsetenv(v)
		}

		var err error
		dir, err = ioutil.TempDir("", "relay-config")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		for _, v := range variables {
			os.Unsetenv(v)
		}
		os.RemoveAll(dir)
	})

	It("uses defaults when nothing is configured", func() {
		config, err := cmd.LoadConfig(filepath.Join(dir, ".env"))
		Expect(err).ShouldNot(HaveOccurred())

		Expect(config.ListenAddress()).To(Equal("0.0.0.0:9095"))
		Expect(config.ProxyProtocol).To(BeFalse())
		Expect(config.Sequential).To(BeFalse())
		Expect(config.ConnectTimeout).To(Equal(10 * time.Second))
		Expect(config.UpstreamTimeout).To(Equal(30 * time.Second))
		Expect(config.CheckTimeout).To(Equal(500 * time.Millisecond))
		Expect(config.DNS.Server).To(BeEmpty())
		Expect(config.DNS.Timeout).To(Equal(2 * time.Second))
		Expect(config.Journal.RedisAddress).To(BeEmpty())
		Expect(config.Journal.Key).To(Equal("relay:journal"))
		Expect(config.Journal.MaxLen).To(BeEquivalentTo(10000))
	})

	It("reads the environment", func() {
		os.Setenv("ADDRESS", "127.0.0.1")
		os.Setenv("PORT", "8080")
		os.Setenv("PROXY_PROTOCOL", "true")
		os.Setenv("SEQUENTIAL", "true")
		os.Setenv("UPSTREAM_TIMEOUT", "5s")
		os.Setenv("DNS_SERVER", "127.0.0.1:53")
		os.Setenv("REDIS_ADDR", "redis:6379")
		os.Setenv("JOURNAL_MAX_LEN", "10")

		config, err := cmd.LoadConfig(filepath.Join(dir, ".env"))
		Expect(err).ShouldNot(HaveOccurred())

		Expect(config.ListenAddress()).To(Equal("127.0.0.1:8080"))
		Expect(config.ProxyProtocol).To(BeTrue())
		Expect(config.Sequential).To(BeTrue())
		Expect(config.UpstreamTimeout).To(Equal(5 * time.Second))
		Expect(config.DNS.Server).To(Equal("127.0.0.1:53"))
		Expect(config.Journal.RedisAddress).To(Equal("redis:6379"))
		Expect(config.Journal.MaxLen).To(BeEquivalentTo(10))
	})

	It("reads the dotenv file, without overriding the environment", func() {
		path := filepath.Join(dir, ".env")
		err := ioutil.WriteFile(path, []byte("ADDRESS=10.0.0.1\nPORT=1234\n"), 0600)
		Expect(err).ShouldNot(HaveOccurred())
		os.Setenv("PORT", "4321")

		config, err := cmd.LoadConfig(path)
		Expect(err).ShouldNot(HaveOccurred())

		Expect(config.ListenAddress()).To(Equal("10.0.0.1:4321"))
	})

	It("returns an error for invalid values", func() {
		os.Setenv("UPSTREAM_TIMEOUT", "<invalid>")

		_, err := cmd.LoadConfig(filepath.Join(dir, ".env"))
		Expect(err).Should(HaveOccurred())
	})
})

var _ = Describe("Usage", func() {
	It("describes the environment variables", func() {
		usage := cmd.Usage()

		for _, v := range variables {
			Expect(usage).To(ContainSubstring(v))
		}
	})
})
