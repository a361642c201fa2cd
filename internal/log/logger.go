package log

import (
	"io"
	"os"

	"pms/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	return newLogger(conf, os.Stdout, os.Stderr)
}

// newLogger warn 以上寫 stderr，其餘寫 stdout
func newLogger(conf *config.Configuration, stdout, stderr io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(conf.Log.Level)
	if err != nil || conf.Log.Level == "" {
		lvl = zapcore.InfoLevel
	}
	atomic := zap.NewAtomicLevelAt(lvl)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.TimeKey = "ts"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if conf.Log.Format == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l >= zapcore.WarnLevel
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(stdout), stdoutLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(stderr), stderrLevel),
	)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(
			zap.String("service", conf.App.Name),
			zap.String("env", conf.App.Env),
			zap.String("version", conf.App.Version),
		),
	)
	logger.Info("zap logger ready", zap.Stringer("level", lvl))
	return logger, nil
}
