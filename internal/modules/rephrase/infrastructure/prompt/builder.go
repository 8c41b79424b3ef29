package prompt

import (
	"fmt"

	"Rephraser/internal/modules/rephrase/domain/rephrase"
)

// InvalidStylePrompt 风格不合法时返回的哨兵字符串
const InvalidStylePrompt = "Invalid style number"

const plainStyle = "should be simpler and use fewer technical terms compared to the original input"

const plainInstructions = "Rephrase the provided text such that it is Concise while retaining its original meaning. \n" +
	"The generated rephrased answer word length should be around that of the given content. \n" +
	"Ensure the rephrased response remains in the context of the provided content without introducing unrelated information. \n"

const plainOutputFormat = "\n" +
	"            {\n" +
	"                \"rephrased_text\": \"The rephrased version of the input text.\"\n" +
	"            }\n" +
	"            "

// {summary} 与 {response generated} 是给模型看的占位符，中间是真实换行
const analogyOutputFormat = "\n" +
	"            {\n" +
	"                \"rephrased_text\": \"{summary} \n{response generated}\"\n" +
	"            }\n" +
	"            "

const exampleOutputFormat = "\n" +
	"            {\n" +
	"            \"rephrased_text\": \"{summary} \n{response generated}\"\n" +
	"            }\n" +
	"            "

// 模板按原样拼接，句子之间不额外补空格
const plainTemplate = "You're an Educational AI model designed to Rephrase text, which has all the knowledge of the undergraduate Bachelors of Technology Course." +
	"Your task is rephrase the given text based on the your style, the context, and the given guidelines. \n\n" +
	"Your writing style : %[1]s. \n\n" +
	"Follow these instructions to generate a good quality rephrased answer: %[2]s\n" +
	"Given content to be used for rephrasing: ```%[3]s```\n\n" +
	"Return your output as json in the following format:" +
	"%[4]s \n\n" +
	"Ensure that you follow all the above guidelines and rules to generate the rephrased content. Any deviation from these guidelines " +
	"            will result in rephrased content not meeting the education standards required for this exercise."

const analogyTemplate = "You are an AI specializing in creating relatable analogies. " +
	"Given the following explanation, provide a short, real-world analogy that is " +
	"easy to understand and relatable for most people.\n\n" +
	"Answer: %[1]s\n\n" +
	"Analogy: " +
	"Ensure that the analogy does not exceed more than 50 words.\n\n" +
	"And concatenate these result after the given %[2]s text" +
	"Ensure the %[2]s followed by the **analogy** generated is included in the output." +
	"Format Your Output: " +
	"Return your response in the given format:\n" +
	"%[3]s"

const exampleTemplate = "You are an Educational AI assistant who excels in Bachelors of Technology course. " +
	"You have all the knowledge about every subject and its whole content. " +
	"Given the following answer, generate three concise examples that relate to the content. " +
	"Each example must be brief and to the point.\n\n" +
	"Answer: %[1]s\n\n" +
	"Ensure that the word length of each example does not exceed 15 words.\n\n" +
	"And concatenate these result after the given %[2]s text" +
	"Ensure the %[2]s followed by the **examples** generated is included in the output." +
	"Format Your Output: " +
	"Return your response in the given format:\n" +
	"%[3]s"

// Build 根据风格构建完整的 Prompt
//
// 每个模板同时包含任务说明和要求模型返回的 JSON 结构，一次单轮补全即可。
// 纯函数：相同输入总是得到相同输出。
func Build(style rephrase.Style, summary, answer string) string {
	switch style {
	case rephrase.StylePlain:
		return fmt.Sprintf(plainTemplate, plainStyle, plainInstructions, summary, plainOutputFormat)
	case rephrase.StyleAnalogy:
		return fmt.Sprintf(analogyTemplate, answer, summary, analogyOutputFormat)
	case rephrase.StyleExample:
		return fmt.Sprintf(exampleTemplate, answer, summary, exampleOutputFormat)
	default:
		return InvalidStylePrompt
	}
}
