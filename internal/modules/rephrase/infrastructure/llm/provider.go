package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"Rephraser/internal/config"

	arkModel "github.com/cloudwego/eino-ext/components/model/ark"
	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

// DefaultOpenAIModel openai 未配置模型且无 OPENAI_MODEL 时使用
const DefaultOpenAIModel = "gpt-4"

type ChatModelMeta struct {
	Provider string
	Model    string
}

// NewChatModelFromConfig 根据配置创建补全模型
//
// 支持 openai（默认，兼容 OpenAI 协议的服务均可）、ark、mock。
// 不做重试；timeoutSeconds 未配置时使用 HTTP 客户端默认超时。
func NewChatModelFromConfig(ctx context.Context, conf *config.Config) (model.BaseChatModel, ChatModelMeta, error) {
	if conf == nil {
		return nil, ChatModelMeta{}, fmt.Errorf("nil config")
	}

	cmConf := conf.AIConfig.ChatModel
	provider := strings.ToLower(strings.TrimSpace(cmConf.Provider))
	modelName := strings.TrimSpace(cmConf.Model)

	var timeout time.Duration
	if cmConf.TimeoutSeconds > 0 {
		timeout = time.Duration(cmConf.TimeoutSeconds) * time.Second
	}

	switch provider {
	case "", "disabled", "none":
		return nil, ChatModelMeta{}, fmt.Errorf("chat model provider not configured")

	case "openai":
		apiKey := firstNonEmpty(cmConf.APIKey, os.Getenv("OPENAI_API_KEY"))
		modelName = firstNonEmpty(modelName, os.Getenv("OPENAI_MODEL"), DefaultOpenAIModel)
		baseURL := firstNonEmpty(cmConf.BaseURL, os.Getenv("OPENAI_BASE_URL"))

		if apiKey == "" {
			return nil, ChatModelMeta{}, fmt.Errorf("openai chat model missing apiKey")
		}

		cm, err := openaiModel.NewChatModel(ctx, &openaiModel.ChatModelConfig{
			APIKey:     apiKey,
			Model:      modelName,
			BaseURL:    baseURL,
			ByAzure:    cmConf.ByAzure,
			APIVersion: strings.TrimSpace(cmConf.AzureAPIVersion),
			Timeout:    timeout,
		})
		if err != nil {
			return nil, ChatModelMeta{}, err
		}
		return cm, ChatModelMeta{Provider: "openai", Model: modelName}, nil

	case "ark":
		apiKey := firstNonEmpty(cmConf.APIKey, os.Getenv("ARK_API_KEY"))
		accessKey := firstNonEmpty(cmConf.AccessKey, os.Getenv("ARK_ACCESS_KEY"))
		secretKey := firstNonEmpty(cmConf.SecretKey, os.Getenv("ARK_SECRET_KEY"))
		modelName = firstNonEmpty(modelName, os.Getenv("ARK_MODEL_ID"))
		baseURL := firstNonEmpty(cmConf.BaseURL, os.Getenv("ARK_BASE_URL"))
		region := firstNonEmpty(cmConf.Region, os.Getenv("ARK_REGION"))

		if apiKey == "" && (accessKey == "" || secretKey == "") {
			return nil, ChatModelMeta{}, fmt.Errorf("ark chat model missing apiKey or accessKey/secretKey")
		}
		if modelName == "" {
			return nil, ChatModelMeta{}, fmt.Errorf("ark chat model missing model")
		}

		retryTimes := 0
		arkConf := &arkModel.ChatModelConfig{
			APIKey:     apiKey,
			AccessKey:  accessKey,
			SecretKey:  secretKey,
			Model:      modelName,
			BaseURL:    baseURL,
			Region:     region,
			RetryTimes: &retryTimes,
		}
		if timeout > 0 {
			arkConf.Timeout = &timeout
		}

		cm, err := arkModel.NewChatModel(ctx, arkConf)
		if err != nil {
			return nil, ChatModelMeta{}, err
		}
		return cm, ChatModelMeta{Provider: "ark", Model: modelName}, nil

	case "mock":
		// 本地联调用，不访问外部服务
		if modelName == "" {
			modelName = "mock"
		}
		return NewMockChatModel(MockEchoReply), ChatModelMeta{Provider: "mock", Model: modelName}, nil

	default:
		return nil, ChatModelMeta{}, fmt.Errorf("unknown chat model provider: %s", provider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
