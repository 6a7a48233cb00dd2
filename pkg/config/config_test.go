package config_test

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xyproto/env/v2"

	"chip8asm/pkg/config"
)

var _ = Describe("Verbosity", func() {
	DescribeTable("parsing",
		func(in string, want config.Verbosity) {
			v, err := config.ParseVerbosity(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(want))
		},
		Entry("empty", "", config.Quiet),
		Entry("quiet", "quiet", config.Quiet),
		Entry("verbose", "Verbose", config.Verbose),
		Entry("info", "info", config.Verbose),
		Entry("debug", " DEBUG ", config.Debug),
	)

	It("rejects unknown values", func() {
		_, err := config.ParseVerbosity("loud")
		Expect(err).To(MatchError(ContainSubstring("loud")))
	})

	It("maps to slog levels", func() {
		Expect(config.Quiet.Level()).To(Equal(slog.LevelWarn))
		Expect(config.Verbose.Level()).To(Equal(slog.LevelInfo))
		Expect(config.Debug.Level()).To(Equal(slog.LevelDebug))
		Expect(config.Debug.String()).To(Equal("debug"))
	})
})

var _ = Describe("Options", func() {
	It("requires an input file", func() {
		opts := config.Options{}
		Expect(opts.Validate()).To(MatchError(config.ErrNoInput))
	})

	It("treats - as hex output", func() {
		opts := config.Options{InputPath: "a.asm", OutputPath: "-"}
		Expect(opts.Validate()).To(Succeed())
		Expect(opts.HexOutput).To(BeTrue())
	})

	It("falls back to the default output path", func() {
		opts := config.Options{InputPath: "a.asm"}
		Expect(opts.Validate()).To(Succeed())
		Expect(opts.OutputPath).To(Equal(config.DefaultOutput))
		Expect(opts.LogFormat).To(Equal(config.LogText))
	})

	It("rejects unknown log formats", func() {
		opts := config.Options{InputPath: "a.asm", LogFormat: "xml"}
		Expect(opts.Validate()).To(MatchError(ContainSubstring("xml")))
	})

	It("builds a JSON logger at the selected level", func() {
		var buf bytes.Buffer
		logger := config.Options{Verbosity: config.Verbose, LogFormat: config.LogJSON}.NewLogger(&buf)
		Expect(logger.Enabled(context.Background(), slog.LevelDebug)).To(BeFalse())
		logger.Info("parsed source", "labels", 2)
		Expect(buf.String()).To(HavePrefix("{"))
		Expect(buf.String()).To(ContainSubstring(`"labels":2`))
	})

	It("builds a quiet text logger by default", func() {
		var buf bytes.Buffer
		logger := config.Options{}.NewLogger(&buf)
		logger.Info("hidden")
		logger.Warn("shown")
		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
		Expect(buf.String()).To(ContainSubstring("level=WARN msg=shown"))
	})
})

var _ = Describe("FromEnvironment", func() {
	AfterEach(func() {
		for _, name := range []string{config.EnvOutput, config.EnvVerbosity, config.EnvLogFormat} {
			Expect(env.Unset(name)).To(Succeed())
		}
	})

	It("uses defaults when nothing is set", func() {
		opts, err := config.FromEnvironment()
		Expect(err).NotTo(HaveOccurred())
		Expect(opts.OutputPath).To(Equal(config.DefaultOutput))
		Expect(opts.Verbosity).To(Equal(config.Quiet))
		Expect(opts.LogFormat).To(Equal(config.LogText))
	})

	It("reads overrides", func() {
		Expect(env.Set(config.EnvOutput, "game.ch8")).To(Succeed())
		Expect(env.Set(config.EnvVerbosity, "debug")).To(Succeed())
		Expect(env.Set(config.EnvLogFormat, "JSON")).To(Succeed())

		opts, err := config.FromEnvironment()
		Expect(err).NotTo(HaveOccurred())
		Expect(opts.OutputPath).To(Equal("game.ch8"))
		Expect(opts.Verbosity).To(Equal(config.Debug))
		Expect(opts.LogFormat).To(Equal(config.LogJSON))
	})

	It("reports a bad verbosity", func() {
		Expect(env.Set(config.EnvVerbosity, "chatty")).To(Succeed())
		_, err := config.FromEnvironment()
		Expect(err).To(MatchError(ContainSubstring(config.EnvVerbosity)))
	})
})
