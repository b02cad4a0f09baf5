package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

// GroundingSource is a citation returned alongside grounded answers.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ResearchResult is free-text analysis plus its source citations.
type ResearchResult struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

// ProductSuggestion is the structured guess extracted from a product
// photo.
type ProductSuggestion struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	SuggestedSKU string  `json:"suggestedSku"`
}

type GeminiService struct {
	client *genai.Client
}

var Gemini *GeminiService

func InitializeGemini(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	Gemini = &GeminiService{client: client}
	return nil
}

// AnalyzeProductImage extracts a best-effort product record from a
// base64-encoded JPEG.
func (gs *GeminiService) AnalyzeProductImage(ctx context.Context, imageBase64 string) (ProductSuggestion, error) {
	// Accept data URLs as sent by browser canvases.
	if idx := strings.Index(imageBase64, ","); idx >= 0 && strings.HasPrefix(imageBase64, "data:") {
		imageBase64 = imageBase64[idx+1:]
	}
	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return ProductSuggestion{}, fmt.Errorf("invalid image payload: %w", err)
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(imageData, "image/jpeg"),
		genai.NewPartFromText("Extract product information from this image. Provide the product name, suggested category, an estimated market price, and a brief description. Return as JSON."),
	}, genai.RoleUser)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":         {Type: genai.TypeString},
				"category":     {Type: genai.TypeString},
				"price":        {Type: genai.TypeNumber},
				"description":  {Type: genai.TypeString},
				"suggestedSku": {Type: genai.TypeString},
			},
			Required: []string{"name", "category", "price"},
		},
	}

	resp, err := gs.client.Models.GenerateContent(ctx, geminiModel, []*genai.Content{content}, config)
	if err != nil {
		return ProductSuggestion{}, fmt.Errorf("image analysis failed: %w", err)
	}

	var suggestion ProductSuggestion
	if err := json.Unmarshal([]byte(resp.Text()), &suggestion); err != nil {
		return ProductSuggestion{}, fmt.Errorf("unparseable analysis response: %w", err)
	}
	return suggestion, nil
}

// GetMarketPrice returns a search-grounded market summary for a
// product name.
func (gs *GeminiService) GetMarketPrice(ctx context.Context, productName string) (ResearchResult, error) {
	prompt := fmt.Sprintf("What is the current average market price for %q? Provide a brief summary of price trends and competitors.", productName)

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := gs.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), config)
	if err != nil {
		return ResearchResult{}, fmt.Errorf("market research failed: %w", err)
	}
	return researchResult(resp, "No information found."), nil
}

// FindSuppliers returns a maps-grounded list of nearby suppliers for a
// product name.
func (gs *GeminiService) FindSuppliers(ctx context.Context, productName string, lat, lng float64) (ResearchResult, error) {
	prompt := fmt.Sprintf("Find 3 local suppliers or stores that sell %q near my current location.", productName)

	resp, err := gs.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), supplierConfig(lat, lng))
	if err != nil {
		return ResearchResult{}, fmt.Errorf("supplier lookup failed: %w", err)
	}
	return researchResult(resp, "No suppliers found nearby."), nil
}

// supplierConfig enables the maps tool anchored at the caller's
// coordinates. LatLng carries pointer fields so zero values stay
// distinguishable from "unset".
func supplierConfig(lat, lng float64) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: genai.Ptr(lat), Longitude: genai.Ptr(lng)},
			},
		},
	}
}

// GenerateDescription writes short marketing copy for a product.
func (gs *GeminiService) GenerateDescription(ctx context.Context, name, category string) (string, error) {
	prompt := fmt.Sprintf("Generate a professional, concise product description for an item named %q in the category %q. Focus on its likely features and benefits. Max 2-3 sentences.", name, category)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(
			"You are an expert product copywriter. Your goal is to write catchy, accurate, and professional descriptions for an inventory system.",
			genai.RoleUser,
		),
	}

	resp, err := gs.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("description generation failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func researchResult(resp *genai.GenerateContentResponse, fallback string) ResearchResult {
	result := ResearchResult{Text: strings.TrimSpace(resp.Text()), Sources: []GroundingSource{}}
	if result.Text == "" {
		result.Text = fallback
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web != nil {
				result.Sources = append(result.Sources, GroundingSource{
					Title: chunk.Web.Title,
					URI:   chunk.Web.URI,
				})
			}
		}
	}
	return result
}
