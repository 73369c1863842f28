package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Watch reloads the config file on change and hands every valid result to
// apply. Invalid files are logged and ignored.
func Watch(v *viper.Viper, log *zap.Logger, apply func(Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		reload(v, log, e, apply)
	})
	v.WatchConfig()
}

func reload(v *viper.Viper, log *zap.Logger, e fsnotify.Event, apply func(Config)) {
	cfg, err := FromViper(v)
	if err != nil {
		log.Warn("config reload ignored", zap.String("file", e.Name), zap.Error(err))
		return
	}
	apply(cfg)
	log.Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
}
