package config

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

func load(configPath string) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}
	cfg, err := read(configPath, func(c Config) {
		log.Println("配置文件变更")
		Set(c)
	})
	if err != nil {
		panic(err)
	}
	Set(cfg)
}

// read 解析配置文件，未填写的字段保留默认值；onChange 不为空时监听文件变更
func read(configPath string, onChange func(Config)) (Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("读取配置失败: %w", err)
	}
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("解析配置失败: %w", err)
	}
	if onChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			next := Default()
			if err := v.Unmarshal(&next); err != nil {
				log.Printf("❌ 配置热更新失败: %v", err)
				return
			}
			onChange(next)
		})
		v.WatchConfig()
	}
	return cfg, nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
