package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/KenichiNogami/ricePriceSurvey/model"
)

const initialSurveyInstructions = `
- 白米5kgの価格調査を行い、結果を包括的なテーブル形式でまとめてください。
- 必ず20件以上の具体的な価格情報を提供してください。これは最優先事項です。
- 都道府県、市町村、販売社名、銘柄、価格の情報を含めてください。
- 対象情報は過去5日間に販売されている情報に限定してください。
- コシヒカリ、ササニシキ、カリフォルニア米、あきたこまち、ゆめぴりかなどの主要銘柄について調査してください。
- オンラインショップ（Amazon、楽天市場）と実店舗の両方を含めてください。
- JAや生産者からの直販情報も含めてください。
- ユーザーが追加条件（玄米も調査、無洗米も調査、関税情報も詳しく等）を指定している場合は、それらの情報も含めてください。
- 特別栽培米・有機米・無農薬米など、特徴的な商品も含めてください。
- X（旧Twitter）やInstagramなどのSNSからの情報も必ず含めてください。
- 輸入米と国産米の価格差が明確になるようにしてください。
- 最新の情報を優先し、信頼性の高い情報源を重視してください。`

const additionalQuestionInstructions = `
- ユーザーの質問に対して具体的かつ包括的に回答してください。
- 米に関する専門知識を活用し、特に価格、銘柄、産地、関税制度などについて詳しく説明してください。
- 最低でも10項目以上の関連情報を提供し、包括的な回答を心がけてください。
- 必要に応じて情報をテーブル形式で整理してください。
- SNSや専門サイトからの最新情報も積極的に引用してください。
- 質問が不明確な場合は、最も可能性の高い解釈に基づいて回答してください。`

const marketContext = `現在、日本では米の価格調査が重要視されています。特に白米5kgの価格は、地域や銘柄によって大きく異なります。
コシヒカリは一般的に高価格帯で、特に新潟県魚沼産のものは最高級とされています。
一方、カリフォルニア米などの輸入米は国産米より安価な傾向があります。
また、特別栽培米や有機米は通常の米より高価格で販売されています。
JA（農協）直販、スーパー、オンラインショップ（楽天市場、Amazon）、農家直販など、販売チャネルによっても価格は変動します。
SNS（X/Twitter、Instagram）では消費者が実際に購入した価格情報が共有されることがあります。`

const expectedOutput = `白米5kgの価格調査結果を包括的なテーブル形式で提示し、必ず20件以上の具体的な価格情報を含めてください。
都道府県、市町村/地域、販売店/販売元、銘柄、価格（円）、特徴（産年、等級、栽培方法など）の情報を含め、
様々な地域や販売チャネルからの情報をバランスよく取り入れてください。
ユーザーからの追加条件がある場合は、それを考慮した情報も提供してください。`

const augmentText = `
<MCP:current_query>
{{.Query}}
</MCP:current_query>

<MCP:instructions>
{{.Instructions}}
</MCP:instructions>

<MCP:context>
{{.Context}}
</MCP:context>

<MCP:expected_output>
{{.ExpectedOutput}}
</MCP:expected_output>
`

var augmentTemplate = template.Must(template.New("augment").Parse(augmentText))

type augmentData struct {
	Query          string
	Instructions   string
	Context        string
	ExpectedOutput string
}

// Augmenter wraps a survey prompt with instructions and market background
type Augmenter struct {
	tmpl *template.Template
}

func NewAugmenter() *Augmenter {
	return &Augmenter{tmpl: augmentTemplate}
}

// Augment never fails: if rendering breaks, the prompt is returned unchanged.
func (a *Augmenter) Augment(prompt string, surveyType model.SurveyType) (augmented string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warnf("Prompt augmentation panicked, using original prompt: %v", r)
			augmented = prompt
		}
	}()

	out, err := a.render(prompt, surveyType)
	if err != nil {
		logger.Warnf("Prompt augmentation failed, using original prompt: %v", err)
		return prompt
	}
	return out
}

func (a *Augmenter) render(prompt string, surveyType model.SurveyType) (string, error) {
	if a == nil || a.tmpl == nil {
		return "", fmt.Errorf("augmentation template is not configured")
	}

	instructions := additionalQuestionInstructions
	if surveyType == model.SurveyTypeInitial {
		instructions = initialSurveyInstructions
	}

	var sb strings.Builder
	err := a.tmpl.Execute(&sb, augmentData{
		Query:          prompt,
		Instructions:   instructions,
		Context:        marketContext,
		ExpectedOutput: expectedOutput,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render augmentation template: %w", err)
	}
	return sb.String(), nil
}
