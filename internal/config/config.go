package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultConfigPath 本地部署使用的配置文件
const DefaultConfigPath = "configs/config_local.toml"

// ConfigPathEnv 覆盖配置文件路径的环境变量
const ConfigPathEnv = "REPHRASER_CONFIG"

type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type LogConfig struct {
	LogPath    string `toml:"logPath"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"maxSizeMB"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAgeDays int    `toml:"maxAgeDays"`
	Compress   bool   `toml:"compress"`
	Console    bool   `toml:"console"`
}

type AIChatModelConfig struct {
	Provider        string `toml:"provider"`
	APIKey          string `toml:"apiKey"`
	AccessKey       string `toml:"accessKey"`
	SecretKey       string `toml:"secretKey"`
	BaseURL         string `toml:"baseURL"`
	Region          string `toml:"region"`
	Model           string `toml:"model"`
	TimeoutSeconds  int    `toml:"timeoutSeconds"` // 0 表示使用 HTTP 客户端默认值
	ByAzure         bool   `toml:"byAzure"`
	AzureAPIVersion string `toml:"azureApiVersion"`
}

type AIConfig struct {
	ChatModel AIChatModelConfig `toml:"chatModel"`
}

// RephraseConfig 改写相关参数
type RephraseConfig struct {
	PlainTemperature    float32 `toml:"plainTemperature"`
	CreativeTemperature float32 `toml:"creativeTemperature"` // 类比/举例
	MaxInputChars       int     `toml:"maxInputChars"`
}

type SecurityConfig struct {
	SSLRedirect  bool     `toml:"sslRedirect"`
	AllowOrigins []string `toml:"allowOrigins"`
}

type Config struct {
	MainConfig     `toml:"mainConfig"`
	LogConfig      `toml:"logConfig"`
	AIConfig       `toml:"aiConfig"`
	RephraseConfig `toml:"rephraseConfig"`
	SecurityConfig `toml:"securityConfig"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "Rephraser",
			Host:    "0.0.0.0",
			Port:    8000,
		},
		LogConfig: LogConfig{
			LogPath:    "logs/rephraser.log",
			Level:      "debug",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
			Console:    true,
		},
		AIConfig: AIConfig{
			ChatModel: AIChatModelConfig{
				Provider: "openai",
			},
		},
		RephraseConfig: RephraseConfig{
			PlainTemperature:    0.3,
			CreativeTemperature: 0.7,
			MaxInputChars:       20000,
		},
		SecurityConfig: SecurityConfig{
			AllowOrigins: []string{"*"},
		},
	}
}

// ResolvePath 依次使用显式路径、环境变量、默认路径
func ResolvePath(path string) string {
	if p := strings.TrimSpace(path); p != "" {
		return p
	}
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnv)); p != "" {
		return p
	}
	return DefaultConfigPath
}

// Load 读取 toml 配置，未出现的字段保留默认值
//
// 文件不存在时返回默认配置，其余读取错误直接返回。
func Load(path string) (*Config, error) {
	conf := Default()
	path = ResolvePath(path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			conf.applyDefaults()
			return conf, nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, conf); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	conf.applyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// applyDefaults 补齐被配置文件显式置空的字段
//
// 温度和 maxInputChars 的 0 是合法取值，不在这里处理，缺省值由 Default() 提供。
func (c *Config) applyDefaults() {
	def := Default()
	if c.MainConfig.Port == 0 {
		c.MainConfig.Port = def.MainConfig.Port
	}
	if strings.TrimSpace(c.LogConfig.LogPath) == "" {
		c.LogConfig.LogPath = def.LogConfig.LogPath
	}
	if c.LogConfig.MaxSizeMB <= 0 {
		c.LogConfig.MaxSizeMB = def.LogConfig.MaxSizeMB
	}
	if strings.TrimSpace(c.AIConfig.ChatModel.Provider) == "" {
		c.AIConfig.ChatModel.Provider = def.AIConfig.ChatModel.Provider
	}
}

// Validate 校验取值范围
func (c *Config) Validate() error {
	if c.MainConfig.Port < 0 || c.MainConfig.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.MainConfig.Port)
	}
	for name, t := range map[string]float32{
		"plainTemperature":    c.RephraseConfig.PlainTemperature,
		"creativeTemperature": c.RephraseConfig.CreativeTemperature,
	} {
		if t < 0 || t > 2 {
			return fmt.Errorf("%s out of range [0, 2]: %v", name, t)
		}
	}
	return nil
}

// Addr 监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}
