// Package prompts builds the system and user prompts sent to the generation API.
//
// Every function here is pure: payload fields are embedded verbatim with no
// escaping or length checks.
package prompts

import (
	"fmt"
	"strings"

	"github.com/onskyline/science-interview/internal/models"
)

// Subject labels embedded into the question prompt
const (
	SubjectMath    = "수학"
	SubjectScience = "과학"
)

// Closing instructions of the feedback prompt
const (
	FeedbackCompareInstruction    = "학생의 답안과 모범 답안을 비교하여 피드백을 생성하세요."
	FeedbackCurriculumInstruction = "중학교 교육과정 지식에 기반하여 학생 답안의 과학적/수학적 정확성을 평가하고 피드백을 생성하세요."
)

// Prompt is a system/user prompt pair passed once to the generation API
type Prompt struct {
	System string
	User   string
}

// Subject returns the subject label for a question payload
func Subject(p *models.QuestionPayload) string {
	if p.IsMath() {
		return SubjectMath
	}
	return SubjectScience
}

// Question builds the prompt for generating one interview question on a topic
func Question(p *models.QuestionPayload) Prompt {
	subject := Subject(p)

	system := fmt.Sprintf(`당신은 과학고 입시 %[1]s 면접관입니다. 학생이 제시한 '%[2]s' 라는 주제에 대해 %[1]s 관련 질문을 생성해야 합니다. 다음 규칙을 반드시 준수하세요:
1.  대한민국의 중학교 %[1]s 교육과정 내에서만 질문하세요.
2.  질문의 길이는 반드시 100자 이내로 매우 간결해야 합니다.
3.  단순 지식 확인보다는, 원리를 설명하도록 유도하는 질문을 생성하세요.
4.  생성된 질문 텍스트만 응답하고, 다른 설명은 절대 추가하지 마세요.`, subject, p.GetTopic())

	return Prompt{
		System: system,
		User:   "주제: " + p.GetTopic(),
	}
}

// Feedback builds the prompt for evaluating a student's answer
func Feedback(p *models.FeedbackPayload) Prompt {
	instruction := FeedbackCurriculumInstruction
	if p.HasModelAnswer() {
		instruction = FeedbackCompareInstruction
	}

	system := feedbackSystemPrompt + instruction

	var user strings.Builder
	user.WriteString("**질문:** ")
	user.WriteString(p.GetQuestion())
	user.WriteString("\n**학생 답안:** ")
	user.WriteString(p.GetAnswer())
	if p.HasModelAnswer() {
		user.WriteString("\n**모범 답안:** ")
		user.WriteString(p.ModelAnswer)
	}

	return Prompt{
		System: system,
		User:   user.String(),
	}
}

// Section lines of the feedback and report prompts are indented by 16 spaces
const listIndent = "                "

const feedbackSystemPrompt = "당신은 과학고 입시 전문 AI 면접관입니다. 학생의 답안에 대해 아래 형식에 맞춰 구체적이고 건설적인 피드백을 제공해주세요.\n" +
	listIndent + "- **[잘한 점]**: 학생의 답변에서 긍정적인 부분을 칭찬합니다.\n" +
	listIndent + "- **[보완할 점]**: 학생의 답변에서 논리적 오류, 개념적 부정확성, 또는 부족한 부분을 지적합니다.\n" +
	listIndent + "- **[추가 조언]**: 더 좋은 답변을 위한 팁이나 관련 심화 개념을 간략히 조언합니다.\n" +
	listIndent

const reportSystemPrompt = "당신은 학생의 면접 기록을 분석하여 종합 리포트를 작성하는 입시 컨설턴트입니다. 아래의 전체 면접 기록을 바탕으로, 학생의 장점과 단점을 분석하고, 앞으로의 학습 방향과 면접 대비 팁을 구체적으로 제시해주세요. 리포트는 다음 형식으로 작성합니다.\n" +
	listIndent + "- **[종합 분석]**: 전체 답변 기록을 통해 드러난 학생의 지식 수준, 논리력, 표현력 등을 종합적으로 평가합니다.\n" +
	listIndent + "- **[주요 강점]**: 칭찬할 만한 답변이나 일관되게 나타나는 강점을 요약합니다.\n" +
	listIndent + "- **[보완 필요 영역]**: 자주 실수하는 개념이나 부족한 부분을 명확히 지적합니다.\n" +
	listIndent + "- **[맞춤 학습 전략]**: 보완이 필요한 부분을 개선하기 위한 구체적인 학습 방법을 제안합니다.\n" +
	listIndent + "- **[면접 태도 조언]**: 답변 내용 외에, 면접관에게 더 좋은 인상을 줄 수 있는 태도나 말투에 대해 조언합니다."

// Transcript flattens a session history into a numbered transcript.
// Items keep their original order and are 1-indexed; entries are joined by a blank line.
func Transcript(items []models.SessionItem) string {
	entries := make([]string, len(items))
	for i, item := range items {
		entries[i] = fmt.Sprintf("문항 %d: %s\n답변 %d: %s\n", i+1, item.GetQuestion(), i+1, item.Answer)
	}
	return strings.Join(entries, "\n")
}

// Report builds the prompt for the end-of-session report
func Report(p *models.ReportPayload) Prompt {
	return Prompt{
		System: reportSystemPrompt,
		User:   Transcript(p.SessionHistory),
	}
}
