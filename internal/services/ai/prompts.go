package ai

import (
	"strings"
)

const roleSection = `<ROLE>
You are a specialized AI assistant designed to parse recipe information from social media captions. Your task is to extract key details from the given caption text and structure them in a specific JSON format.
</ROLE>`

const extractionGuidelinesSection = `<EXTRACTION_GUIDELINES>
When presented with a recipe caption, extract the following information:

1. Recipe Metadata:
   - Title (a short, descriptive dish name)
   - Difficulty (exactly one of "Easy", "Medium", "Hard")
   - Servings (as stated in the caption, e.g. "8 kişilik" or "serves 4"; empty string if absent)
   - Total duration (the overall time mentioned in the caption; empty string if absent)

2. Ingredients List:
   - Item name (cleaned of filler words and preparation notes)
   - Amount (the quantity exactly as written, e.g. "2", "1/2", "Yarım")
   - Unit of measurement (omit when the ingredient is counted without a unit, e.g. "3 eggs")

3. Steps List:
   - Sequential order starting at 1, with no gaps
   - The instruction text for each step
   - Ingredients used in that step, when identifiable
   - Duration mentioned within the step (e.g. "40 dakika", "20 minutes"; empty string if absent)
   - A tip when the step carries an advisory note in parentheses

4. Hashtags:
   - Every hashtag in the caption, without the leading "#"
   - Omit the field entirely when the caption has no hashtags
</EXTRACTION_GUIDELINES>`

const inferenceSection = `<INFERENCE>
If any information is not explicitly stated, use your best judgment:
- For the title, prefer an early caption line that names the dish; ignore emoji and decoration
- For difficulty, look for explicit words ("kolay", "easy", "zor", "hard"); when nothing signals difficulty, use "Medium"
- Never invent ingredients or steps that the caption does not contain
- Keep amounts and durations in their original language and wording; do not convert units
- Preserve the order in which steps appear in the caption
</INFERENCE>`

const outputFormatSection = `<OUTPUT_FORMAT>
Always format your response as a JSON object with the following structure:

{
  "title": "",
  "difficulty": "Easy|Medium|Hard",
  "servings": "",
  "total_duration": "",
  "ingredients": [
    {
      "item": "",
      "amount": "",
      "unit": ""
    }
  ],
  "steps": [
    {
      "order": 1,
      "text": "",
      "ingredients_used": [],
      "duration": "",
      "tip": ""
    }
  ],
  "hashtags": []
}
</OUTPUT_FORMAT>`

const instructionsSection = `<INSTRUCTIONS>
The user will provide the caption text of a social media post. Parse it and respond with only the structured JSON output. Do not include any additional explanation or text outside of the JSON object. Ensure that:
1. The difficulty field is exactly "Easy", "Medium", or "Hard"
2. Step orders start at 1 and increase by one without gaps
3. Ingredient items are real food words, never bare quantities or fragments
4. The unit field is omitted or empty when the ingredient has no unit of measurement
5. The hashtags field is omitted when the caption contains no hashtags
6. All extracted text stays in the caption's original language
</INSTRUCTIONS>`

const taskOpen = `<TASK>
Extract key information from the recipe caption and output structured JSON data that matches the format below.
`

const taskClose = `</TASK>`

func getPlatformContext(platform string) string {
	switch strings.ToLower(platform) {
	case "instagram":
		return `<PLATFORM_CONTEXT>
This recipe comes from Instagram. Keep in mind:
- Instagram posts often have detailed captions with full recipe information
- Hashtags may indicate cuisine type, dietary restrictions, or meal type
- Captions may include ingredient lists formatted with emojis or bullet points
- Headers like "Malzemeler:" or "Ingredients:" usually open the ingredient list
- Influencer-style content may use informal measurements ("a splash of", "a handful")
</PLATFORM_CONTEXT>`
	case "tiktok":
		return `<PLATFORM_CONTEXT>
This recipe comes from TikTok. Keep in mind:
- TikTok captions are typically short and may hold only a partial recipe
- Hashtags are heavily used and may carry most of the searchable information
- Informal language and slang is common
- Measurements may be estimated or visual ("eyeball it", "about this much")
</PLATFORM_CONTEXT>`
	case "youtube":
		return `<PLATFORM_CONTEXT>
This recipe comes from a YouTube video description. Keep in mind:
- The first line is usually the video title and often names the dish
- Descriptions may contain timestamps, channel links, and sponsor text to ignore
- Ingredient lists and step-by-step instructions are often written out in full
</PLATFORM_CONTEXT>`
	default:
		return ""
	}
}

func getLanguageContext(language string) string {
	switch strings.ToLower(language) {
	case "tr":
		return `<LANGUAGE_CONTEXT>
The caption is expected to be in Turkish. Headers like "Malzemeler", "Yapılışı" and units like "su bardağı", "yemek kaşığı", "adet" mark the recipe structure. Keep all extracted text in Turkish.
</LANGUAGE_CONTEXT>`
	case "en":
		return `<LANGUAGE_CONTEXT>
The caption is expected to be in English. Headers like "Ingredients", "Instructions" and units like "cups", "tablespoons" mark the recipe structure. Keep all extracted text in English.
</LANGUAGE_CONTEXT>`
	default:
		return ""
	}
}

// BuildExtractionPrompt builds a caption extraction prompt with optional
// platform and language specific context.
func BuildExtractionPrompt(platform, language string) string {
	var sb strings.Builder
	sb.WriteString(roleSection)
	sb.WriteString("\n\n")

	pCtx := getPlatformContext(platform)
	if pCtx != "" {
		sb.WriteString(pCtx)
		sb.WriteString("\n\n")
	}

	lCtx := getLanguageContext(language)
	if lCtx != "" {
		sb.WriteString(lCtx)
		sb.WriteString("\n\n")
	}

	sb.WriteString(taskOpen)
	sb.WriteString("\n")
	sb.WriteString(extractionGuidelinesSection)
	sb.WriteString("\n\n")
	sb.WriteString(inferenceSection)
	sb.WriteString("\n\n")
	sb.WriteString(outputFormatSection)
	sb.WriteString("\n\n")
	sb.WriteString(instructionsSection)
	sb.WriteString("\n")
	sb.WriteString(taskClose)

	return sb.String()
}
