package prompt

import (
	"github.com/KenichiNogami/ricePriceSurvey/model"
)

// DefaultSurveyMessage replaces a blank message on initial surveys
const DefaultSurveyMessage = "白米5kgの値段調査をネット情報から行ってください。対象情報は過去5日間に売られている情報に限定してください。売られている都道府県・市町村・販売社名・銘柄（コシヒカリ、ささにしき、カリフォルニア米、あきたこまち、ゆめぴりか等）が分かればそれも含め、テーブル形式で結果を示してください。X等SNSの書き込み情報も調査対象に含めてください。最低でも20件以上の価格情報を提供してください。"

// GetSurveyPrompt fills the template for surveyType with message
func GetSurveyPrompt(surveyType model.SurveyType, message string) string {
	if surveyType == model.SurveyTypeInitial {
		return GetInitialSurveyPrompt(message)
	}
	return GetAdditionalQuestionPrompt(message)
}

func GetInitialSurveyPrompt(message string) string {
	return `あなたは米価格調査の専門家です。以下の指示に従ってください。

**重要な指示**:
1. 白米5kgの価格調査を実施し、結果を包括的にテーブル形式でまとめてください。
2. 必ず20件以上の価格情報を提供してください。これは最優先事項です。
3. 対象情報は過去5日間に販売されている情報に限定してください。
4. 以下の情報を必ず含めてください：
   - 都道府県
   - 市町村/地域
   - 販売店/販売元
   - 銘柄（コシヒカリ、ササニシキ、カリフォルニア米、あきたこまち、ゆめぴりか等）
   - 価格（円）- 具体的な金額で表示
   - 特徴（産年、等級、栽培方法など）
5. オンライン店舗（Amazon、楽天市場など）と実店舗の両方を含めてください。
6. 少なくとも3つの異なる地域からの情報を含めてください。
7. X（旧Twitter）やInstagramなどのSNSからの情報も含めてください。
8. 必ずカリフォルニア米のような輸入米の情報も含めてください。
9. JAや農家からの直売情報も可能な限り含めてください。
10. ユーザーが追加条件を指定している場合は、それらの条件も考慮してください。

**ユーザーの調査依頼**: ` + message
}

func GetAdditionalQuestionPrompt(message string) string {
	return `あなたは米価格調査の専門家です。以下のユーザーの質問に対して、
できるだけ詳細で具体的な情報を提供してください。特に価格、銘柄、産地、関税制度などについては
数値データや具体例を含めて詳しく回答してください。表形式で情報を整理することが適切な場合は、
必ず表形式で回答してください。

質問に関連する情報をできるだけ多く（最低でも10項目以上）含め、包括的な回答を提供してください。
SNSなどの情報源からの情報も含めると良いでしょう。

**ユーザーの質問**: ` + message
}
