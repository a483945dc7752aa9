package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/lots"
	"github.com/etnz/lots/date"
	"github.com/etnz/lots/docs"
	"github.com/etnz/lots/renderer"
	"google.golang.org/genai"
)

// TradeSource loads the trades the accountant answers from.
type TradeSource func() ([]lots.Trade, error)

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user comes with questions about the positions built from their trades: open lots,
			average cost, realised gains, and what a sale would realise under the first-in
			first-out rule. Ask the Accountant for every figure, never compute them yourself.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request, in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search, for news about the
// traded instruments.
func NewTrader(model string) *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader, very well aware of financial products and markets,
		and about the latest news about the different funds or companies.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in Trading, you can search and find about anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			`}}},
		},
	}
}

// NewAccountant returns the expert in charge of the user's trades.
func NewAccountant(model string, src TradeSource) *Expert {
	lib := []Function{PositionsFunc(src), RealisedFunc(src)}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. It is in charge of reading the user's trade file.
		The Accountant computes positions, open lots, average costs and realised gains using the first-in
		first-out method.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's trade file.
				You know how to use the Tools to extract the positions and realised gains.
				You are part of a team of experts, they might ask you questions with an approximate
				language, figure out what they meant.

				How positions are computed:

				` + must(docs.GetTopic("fifo"))}}},
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// PositionsFunc declares the Positions function: the position of one
// symbol, or a summary of all of them.
func PositionsFunc(src TradeSource) *Func {
	const name = "Positions"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `Positions computes the position of a symbol from the trade file: remaining quantity,
			average cost of the open lots, realised gain, open lots and disposals.
			Without symbol, it returns a summary line for every symbol.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The symbol of the instrument, as written in the trade file.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the position.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			trades, err := src()
			if err != nil {
				return failure(id, name, fmt.Errorf("could not load trades: %w", err))
			}
			symbol, err := stringArg(args, "symbol")
			if err != nil {
				return failure(id, name, err)
			}
			if symbol == "" {
				positions, symbols, err := lots.FIFOBySymbol(ctx, trades)
				if err != nil {
					return failure(id, name, err)
				}
				return success(id, name, renderer.PositionsMarkdown(symbols, positions))
			}
			selected, symbol, err := lots.SelectSymbol(trades, symbol)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.PositionMarkdown(symbol, lots.FIFO(selected)))
		},
	}
}

// RealisedFunc declares the Realised function: realised gains of a symbol
// per period.
func RealisedFunc(src TradeSource) *Func {
	const name = "Realised"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Realised computes the gains realised on a symbol, per period, from the first to the last sale.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The symbol of the instrument. It can be omitted when the trade file has a single symbol.",
					},
					"period": {
						Type:        genai.TypeString,
						Description: "The period of each bucket, monthly by default.\n\n" + must(docs.GetTopic("periods")),
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of realised gains per period, with a total.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			trades, err := src()
			if err != nil {
				return failure(id, name, fmt.Errorf("could not load trades: %w", err))
			}
			symbol, err := stringArg(args, "symbol")
			if err != nil {
				return failure(id, name, err)
			}
			p, err := stringArg(args, "period")
			if err != nil {
				return failure(id, name, err)
			}
			if p == "" {
				p = "monthly"
			}
			period, err := date.ParsePeriod(p)
			if err != nil {
				return failure(id, name, err)
			}
			selected, symbol, err := lots.SelectSymbol(trades, symbol)
			if err != nil {
				return failure(id, name, err)
			}
			rows, err := lots.RealisedByPeriod(lots.FIFO(selected), period)
			if err != nil {
				return failure(id, name, err)
			}
			return success(id, name, renderer.RealisedMarkdown(symbol, period, rows))
		},
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", key, v)
	}
	return strings.TrimSpace(s), nil
}
