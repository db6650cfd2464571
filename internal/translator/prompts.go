package translator

import "fmt"

// systemMessage frames every chat-completion request.
const systemMessage = `You are a professional recipe translator and unit converter specializing in accurate, context-aware translations and imperial to metric conversions.
You must preserve the exact structure and format of the input while translating text content AND converting imperial units to metric equivalents.
Never add explanations, commentary, or modify the format of the response.`

// unitConversionRules spells out the conversion table for the model. The
// same constants back the deterministic post-pass in units.go.
const unitConversionRules = `
UNIT CONVERSION RULES:
Convert ALL imperial units to metric equivalents and ROUND to the nearest multiple of 5:

VOLUME CONVERSIONS:
- cups to ml (1 cup = 240 ml, round to nearest 5 ml)
- liquid ounces (fl oz) to ml (1 fl oz = 30 ml, round to nearest 5 ml)
- tablespoons (tbsp) to ml (1 tbsp = 15 ml, already multiple of 5)
- teaspoons (tsp) to ml (1 tsp = 5 ml, already multiple of 5)

MASS CONVERSIONS:
- pounds (lbs) to g (1 lb = 455 g)
- ounces (oz) to g (1 oz = 30 g)

TEMPERATURE CONVERSIONS:
- F or Fahrenheit to C (C = (F - 32) x 5/9, round to nearest 5C)

ROUNDING EXAMPLES:
- 227g becomes 225g, 454g becomes 455g, 163C becomes 165C, 175C stays 175C
- Always round to make measurements practical for home cooking
`

const conversionExamples = `
Examples:
- "2 cups flour" becomes "480 ml flour"
- "1 pound butter" becomes "455 g butter"
- "350F" becomes "175C"
- "1 tablespoon oil" becomes "15 ml oil"
- "8 ounces cream cheese" becomes "240 g cream cheese"
`

// textPrompt builds the prompt for a single text field.
func textPrompt(targetLanguage, text string) string {
	return fmt.Sprintf(`You are a professional recipe translator and unit converter. Translate the following text to %[1]s AND convert imperial units to metric.

TRANSLATION RULES:
1. Only translate text content, preserve all formatting, HTML tags, and special characters
2. Keep the meaning and tone intact
3. If the text is already in %[1]s, keep the translation unchanged
4. Do not add explanations, comments, or additional text
5. Return ONLY the translated and converted text
%[2]s%[3]s
Text to translate and convert: %[4]s`, targetLanguage, unitConversionRules, conversionExamples, text)
}

// ingredientPrompt builds the prompt for a numbered batch of ingredient
// texts.
func ingredientPrompt(targetLanguage, numbered string) string {
	return fmt.Sprintf(`You are a professional recipe translator and unit converter. Translate the following ingredient texts to %[1]s AND convert imperial units to metric.

TRANSLATION RULES:
1. ONLY translate ingredient names and descriptions
2. Preserve any formatting, punctuation, and special characters
3. If an ingredient is already in %[1]s, keep the translation unchanged
4. Return translations in the EXACT same numbered format, one per line
5. Do not add explanations or additional text
%[2]s
Examples:
- "1. 2 cups all-purpose flour" becomes "1. 480 ml all-purpose flour"
- "2. 1 pound ground beef" becomes "2. 455 g ground beef"
- "3. 1 tablespoon olive oil" becomes "3. 15 ml olive oil"

Ingredients to translate and convert:
%[3]s

Return the translations with unit conversions in the same numbered format:`, targetLanguage, unitConversionRules, numbered)
}

// recipePrompt builds the whole-recipe prompt used by the local provider,
// which translates the complete JSON document in one call.
func recipePrompt(targetLanguage, recipeJSON string) string {
	return fmt.Sprintf(`You are a professional recipe translator. Your task is to translate the following recipe from its current language to %s.

IMPORTANT INSTRUCTIONS:
1. Translate ALL text fields (name, description, instructions, ingredients, notes)
2. Convert imperial units (cups, tablespoons, ounces, fahrenheit) to metric equivalents (ml, grams, celsius)
3. Preserve the exact JSON structure and field names
4. Keep numerical values accurate during unit conversions
5. Maintain cooking terminology appropriate for the target language
6. Return ONLY valid JSON, no additional text or explanations

RECIPE TO TRANSLATE:
%s

TRANSLATED RECIPE (JSON only):`, targetLanguage, recipeJSON)
}
