package i18n

// defaultMessages holds the message table per locale. English is the fallback
// for keys a locale lacks.
var defaultMessages = map[string]map[string]string{
	"en": {
		// Errors
		ErrKeyInvalidRequest:       "Invalid request",
		ErrKeyInvalidRequestBody:   "Invalid request body",
		ErrKeyInternalError:        "An unexpected error occurred",
		ErrKeyAPIKeyRequired:       "API key is required",
		ErrKeyInvalidAPIKey:        "Invalid API key",
		ErrKeyNotFound:             "Not found",
		ErrKeyRateLimitExceeded:    "Too many requests, please try again later",
		ErrKeyConflict:             "The wizard was changed in another window. Reload and try again.",
		ErrKeyTimeout:              "The request took too long",
		ErrKeyInvalidSecurityToken: "Invalid security token",
		ErrKeyNeedSelections:       "Select a format and quantity first.",
		ErrKeyInvalidInput:         "Enter a valid number of m².",
		ErrKeyVariationMissing:     "This combination is not available.",
		ErrKeyVariationNotFound:    "No valid variation found.",
		ErrKeyProductNotFound:      "This calculator only works on variable products with quantity attributes.",
		ErrKeyNoPackaging:          "No packaging available for this selection.",
		ErrKeyInvalidStep:          "Unknown wizard step.",
		ErrKeyStepNotReachable:     "Complete the previous steps first.",
		ErrKeyInvalidSelection:     "This option cannot be selected.",
		ErrKeyCatalogUnavailable:   "The catalog is temporarily unavailable, please try again later",

		// Wizard and calculator
		MsgKeyCalculationNote: "The calculation is based on a layer thickness of %s cm. Adjust it to your situation.",
		MsgKeyAddToCart:       "Add %d %s to cart",
		MsgKeyBags:            "bags",
		MsgKeyNoFormats:       "No formats found for this product.",
		MsgKeyNoQuantities:    "No quantities found for this format.",
		MsgKeyNoCategories:    "No categories found.",
		MsgKeySelectCategory:  "Select a category first.",
		MsgKeyNoProducts:      "No variable products found in this category.",

		// Success
		SuccessKeyCalculated:      "Calculation completed successfully",
		SuccessKeySettingsUpdated: "Settings updated",
	},
	"nl": {
		ErrKeyInvalidRequest:       "Ongeldig verzoek",
		ErrKeyInvalidRequestBody:   "Ongeldige inhoud van het verzoek",
		ErrKeyInternalError:        "Er is een onverwachte fout opgetreden",
		ErrKeyAPIKeyRequired:       "API-sleutel is verplicht",
		ErrKeyInvalidAPIKey:        "Ongeldige API-sleutel",
		ErrKeyNotFound:             "Niet gevonden",
		ErrKeyRateLimitExceeded:    "Te veel verzoeken, probeer het later opnieuw",
		ErrKeyConflict:             "De wizard is in een ander venster gewijzigd. Herlaad en probeer opnieuw.",
		ErrKeyTimeout:              "Het verzoek duurde te lang",
		ErrKeyInvalidSecurityToken: "Ongeldige beveiligingstoken",
		ErrKeyNeedSelections:       "Selecteer eerst formaat en hoeveelheid.",
		ErrKeyInvalidInput:         "Vul een geldig aantal m² in.",
		ErrKeyVariationMissing:     "Deze combinatie is niet beschikbaar.",
		ErrKeyVariationNotFound:    "Geen geldige variatie gevonden.",
		ErrKeyProductNotFound:      "Deze calculator werkt alleen op variabele producten met hoeveelheid attributen.",
		ErrKeyNoPackaging:          "Geen verpakking beschikbaar voor deze selectie.",
		ErrKeyInvalidStep:          "Onbekende stap.",
		ErrKeyStepNotReachable:     "Rond eerst de vorige stappen af.",
		ErrKeyInvalidSelection:     "Deze optie kan niet gekozen worden.",
		ErrKeyCatalogUnavailable:   "De catalogus is tijdelijk niet bereikbaar, probeer het later opnieuw",

		MsgKeyCalculationNote: "De berekening is gebaseerd op een laagdikte van %s cm. Pas dit aan naar uw situatie.",
		MsgKeyAddToCart:       "Voeg %d %s toe aan winkelwagen",
		MsgKeyBags:            "zakken",
		MsgKeyNoFormats:       "Geen formaten gevonden voor dit product.",
		MsgKeyNoQuantities:    "Geen hoeveelheden gevonden voor dit formaat.",
		MsgKeyNoCategories:    "Geen categorieën gevonden.",
		MsgKeySelectCategory:  "Selecteer eerst een categorie.",
		MsgKeyNoProducts:      "Geen variabele producten gevonden in deze categorie.",

		SuccessKeyCalculated:      "Berekening voltooid",
		SuccessKeySettingsUpdated: "Instellingen bijgewerkt",
	},
	"pt": {
		ErrKeyInvalidRequest:       "Requisição inválida",
		ErrKeyInvalidRequestBody:   "Corpo da requisição inválido",
		ErrKeyInternalError:        "Ocorreu um erro inesperado",
		ErrKeyAPIKeyRequired:       "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:        "Chave de API inválida",
		ErrKeyNotFound:             "Não encontrado",
		ErrKeyRateLimitExceeded:    "Muitas requisições, tente novamente mais tarde",
		ErrKeyConflict:             "O assistente foi alterado em outra janela. Recarregue e tente novamente.",
		ErrKeyTimeout:              "A requisição demorou demais",
		ErrKeyInvalidSecurityToken: "Token de segurança inválido",
		ErrKeyNeedSelections:       "Selecione primeiro o formato e a quantidade.",
		ErrKeyInvalidInput:         "Informe uma quantidade válida de m².",
		ErrKeyVariationMissing:     "Esta combinação não está disponível.",
		ErrKeyVariationNotFound:    "Nenhuma variação válida encontrada.",
		ErrKeyProductNotFound:      "Esta calculadora só funciona com produtos variáveis com atributos de quantidade.",
		ErrKeyNoPackaging:          "Nenhuma embalagem disponível para esta seleção.",
		ErrKeyInvalidStep:          "Etapa desconhecida.",
		ErrKeyStepNotReachable:     "Conclua primeiro as etapas anteriores.",
		ErrKeyInvalidSelection:     "Esta opção não pode ser selecionada.",
		ErrKeyCatalogUnavailable:   "O catálogo está temporariamente indisponível, tente novamente mais tarde",

		MsgKeyCalculationNote: "O cálculo é baseado em uma espessura de camada de %s cm. Ajuste à sua situação.",
		MsgKeyAddToCart:       "Adicionar %d %s ao carrinho",
		MsgKeyBags:            "sacos",
		MsgKeyNoFormats:       "Nenhum formato encontrado para este produto.",
		MsgKeyNoQuantities:    "Nenhuma quantidade encontrada para este formato.",
		MsgKeyNoCategories:    "Nenhuma categoria encontrada.",
		MsgKeySelectCategory:  "Selecione primeiro uma categoria.",
		MsgKeyNoProducts:      "Nenhum produto variável encontrado nesta categoria.",

		SuccessKeyCalculated:      "Cálculo concluído com sucesso",
		SuccessKeySettingsUpdated: "Configurações atualizadas",
	},
}
