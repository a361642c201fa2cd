package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"pms/config"
	"pms/internal/command"
	"pms/internal/log"
	"pms/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "pms/cmd/docs"
)

var (
	rootPath = path.RootPath()
	envPath  string
	yamlPath string
	conf     *config.Configuration
	logger   *zap.Logger
)

// @title        Property Management API
// @version      1.0
// @description  物業管理後台：租金排程、通知、活動紀錄與報表
// @host         localhost:3000
// @basePath     /

// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
// @description 請在欄位輸入 "Bearer {token}"
func main() {
	rootCmd := &cobra.Command{
		Use: "app",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envPath != "" && yamlPath != "" {
				fmt.Println("同時指定 --env 與 --config，將以 --env 優先")
			}
			initConfig()
			var err error
			logger, err = log.NewLogger(conf)
			if err != nil {
				return fmt.Errorf("init logger failed: %w", err)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			defer logger.Sync()
			app, cleanup, err := wireApp(conf, logger)
			if err != nil {
				panic(err)
			}
			defer cleanup()

			logger.Info("start app ...")
			if err := app.Run(); err != nil {
				panic(err)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-quit:
			case err := <-app.Errors():
				logger.Error("http server stopped", zap.Error(err))
			}

			logger.Info("shutdown app ...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.Stop(ctx); err != nil {
				logger.Error("shutdown failed", zap.Error(err))
			}
		},
	}
	bindFlags(rootCmd.PersistentFlags())

	command.Register(rootCmd, func() (*command.Command, func(), error) {
		return wireCommand(conf, logger)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	flags.StringVarP(&yamlPath, "config", "c", "", "YAML config file, e.g. --config config.yaml")
}

func initConfig() {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	setDefaults(v)

	useFile := false

	if envPath != "" {
		useFile = true
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(rootPath, envPath)
		}
		fmt.Println("load .env config:", envPath)
		v.SetConfigFile(envPath)
		v.SetConfigType("env")
	} else if yamlPath != "" {
		useFile = true
		if !filepath.IsAbs(yamlPath) {
			yamlPath = filepath.Join(rootPath, "conf", yamlPath)
		}
		fmt.Println("load yaml config:", yamlPath)
		v.SetConfigFile(yamlPath)
		v.SetConfigType("yaml")
	} else {
		fmt.Println("No configuration file specified, using environment variables only.")
	}

	if useFile {
		if err := v.ReadInConfig(); err != nil {
			panic(fmt.Errorf("read config failed: %w", err))
		}
		v.WatchConfig()
		v.OnConfigChange(func(in fsnotify.Event) {
			fmt.Println("config file changed:", in.Name)
			if err := v.Unmarshal(&conf); err != nil {
				fmt.Println("unmarshal on change failed:", err)
			}
		})
	}

	bindEnvs(v, reflect.TypeOf(config.Configuration{}))

	if err := v.Unmarshal(&conf); err != nil {
		panic(fmt.Errorf("unmarshal config failed: %w", err))
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP__PORT", 3000)
	v.SetDefault("APP__NAME", "pms")
	v.SetDefault("SCHEDULER__ENABLED", true)
	v.SetDefault("SCHEDULER__SPEC", config.DefaultSchedulerSpec)
	v.SetDefault("SCHEDULER__EXPIRING_SOON_DAYS", config.DefaultExpiringSoonDays)
}

func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		newPath := append(append([]string{}, path...), tag)
		if field.Type.Kind() == reflect.Struct || (field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct) {
			bindEnvs(v, field.Type, newPath...)
		} else {
			_ = v.BindEnv(strings.Join(newPath, "__"))
		}
	}
}
