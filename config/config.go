package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

const defaultConfigRelPath = "configs/conf.yml"

// 热更新在 fsnotify 的 goroutine 里整体替换，读方拿到的是一份拷贝
var current atomic.Pointer[Config]

func init() {
	Set(Default())
}

// Get 当前生效的配置
func Get() Config {
	return *current.Load()
}

// Set 整体替换当前配置
func Set(c Config) {
	current.Store(&c)
}

type Config struct {
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Redis  RedisConfig  `yaml:"redis" mapstructure:"redis"`
	MySQL  MySQLConfig  `yaml:"mysql" mapstructure:"mysql"`
	JWT    JWTConfig    `yaml:"jwt" mapstructure:"jwt"`
	Game   GameConfig   `yaml:"game" mapstructure:"game"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
	Mode string `yaml:"mode" mapstructure:"mode"` // debug / release / test
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

type MySQLConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type JWTConfig struct {
	AccessSecret  string        `yaml:"access_secret" mapstructure:"access_secret"`
	RefreshSecret string        `yaml:"refresh_secret" mapstructure:"refresh_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl" mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" mapstructure:"refresh_ttl"`
}

type GameConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
	AIThinkDelay  time.Duration `yaml:"ai_think_delay" mapstructure:"ai_think_delay"`
	MaxAISteps    int           `yaml:"max_ai_steps" mapstructure:"max_ai_steps"`
}

// Default 没有配置文件时的默认值，测试也用它
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8000", Mode: "debug"},
		Log:    LogConfig{Level: "info", MaxSize: 100, MaxBackups: 7, MaxAge: 30},
		Redis:  RedisConfig{Addr: "127.0.0.1:6379"},
		MySQL:  MySQLConfig{Host: "127.0.0.1", Port: 3306, User: "root", DBName: "tycoon", MaxIdle: 10, MaxConn: 50},
		JWT: JWTConfig{
			AccessSecret:  "access-secret",
			RefreshSecret: "refresh-secret",
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    7 * 24 * time.Hour,
		},
		Game: GameConfig{
			IdleTimeout:   5 * time.Minute,
			SweepInterval: 30 * time.Second,
			MaxAISteps:    500,
		},
	}
}

// Load 传入路径优先，否则从当前目录向上查找 configs/conf.yml
func Load(cfgName string) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName)
			return
		}
		load(filepath.Join(curDir, cfgName))
		return
	}
	load(findConfigUpward(curDir))
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched configs/conf.yml from: " + startDir)
		}
		dir = parent
	}
}
