package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/model"
)

var fieldNames = map[string]string{
	"itemName":  "Nome do Item",
	"storeName": "Loja",
	"category":  "Categoria",
	"city":      "Cidade",
	"region":    "Região",
	"forWhom":   "Para quem",
}

// Prompter fills item forms from a line-oriented terminal.
type Prompter struct {
	writer io.Writer
	in     *answerReader
}

// NewPrompter creates a prompter over reader and writer. Nil values use
// stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		in:     newAnswerReader(reader),
		writer: writer,
	}
}

// FillForm asks for every field of f. Enter keeps the value shown in
// brackets and "-" clears it. Required fields are asked again until they
// are filled.
func (p *Prompter) FillForm(ctx context.Context, f *editor.Form) error {
	title := "Adicionar Novo Item"
	if f.Editing() {
		title = "Editar Item"
	}
	p.println(FormatTitle(title))

	steps := []func(context.Context, *editor.Form) error{
		p.askText("itemName", f.Fields().ItemName, f.SetItemName),
		p.askText("storeName", f.Fields().StoreName, f.SetStoreName),
		p.askChoice("category", model.CategoryNames(), f.Fields().Category, f.SetCategory),
		p.askChoice("city", model.CityNames(), f.Fields().City, f.SetCity),
		p.askText("region", f.Fields().Region, f.SetRegion),
		p.askText("forWhom", f.Fields().ForWhom, f.SetForWhom),
		p.askPrice,
		p.askImage,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return err
		}
	}

	for {
		missing := f.Missing()
		if len(missing) == 0 {
			return nil
		}

		labels := make([]string, 0, len(missing))
		for _, name := range missing {
			labels = append(labels, fieldNames[name])
		}
		p.println(FormatError("Preencha os campos obrigatórios: " + strings.Join(labels, ", ")))

		for _, name := range missing {
			if err := p.askMissing(ctx, f, name); err != nil {
				return err
			}
		}
	}
}

func (p *Prompter) askMissing(ctx context.Context, f *editor.Form, name string) error {
	fields := f.Fields()
	var step func(context.Context, *editor.Form) error
	switch name {
	case "itemName":
		step = p.askText(name, fields.ItemName, f.SetItemName)
	case "storeName":
		step = p.askText(name, fields.StoreName, f.SetStoreName)
	case "category":
		step = p.askChoice(name, model.CategoryNames(), fields.Category, f.SetCategory)
	case "city":
		step = p.askChoice(name, model.CityNames(), fields.City, f.SetCity)
	case "region":
		step = p.askText(name, fields.Region, f.SetRegion)
	case "forWhom":
		step = p.askText(name, fields.ForWhom, f.SetForWhom)
	default:
		return nil
	}
	return step(ctx, f)
}

func (p *Prompter) askText(name, current string, set func(string)) func(context.Context, *editor.Form) error {
	return func(ctx context.Context, _ *editor.Form) error {
		value, err := p.ask(ctx, fieldNames[name]+" *", current)
		if err != nil {
			return err
		}
		set(value)
		return nil
	}
}

// askChoice lists options by number.
func (p *Prompter) askChoice(name string, options []string, current string, set func(string)) func(context.Context, *editor.Form) error {
	return func(ctx context.Context, _ *editor.Form) error {
		for i, o := range options {
			label := o
			if name == "category" {
				label = model.CategoryIcon(o) + " " + o
			}
			p.println(fmt.Sprintf("  [%d] %s", i+1, label))
		}

		p.prompt(fieldNames[name]+" *", current)
		value, err := p.in.choice(ctx, options, current)
		if err != nil {
			return err
		}
		set(value)
		return nil
	}
}

// askPrice takes one price in any currency and fills the other two.
func (p *Prompter) askPrice(ctx context.Context, f *editor.Form) error {
	fields := f.Fields()
	p.println(SubtleStyle.Render("💰 Preços (opcionais): informe em uma moeda, as outras são calculadas."))

	prompts := []struct {
		label   string
		current string
		set     func(string)
	}{
		{"Yen (¥)", fields.PriceYen, f.SetYen},
		{"Real (R$)", fields.PriceReal, f.SetReal},
		{"Dólar ($)", fields.PriceDollar, f.SetDollar},
	}
prices:
	for _, pr := range prompts {
		for {
			p.prompt(pr.label, pr.current)
			value, ok, err := p.in.price(ctx, pr.current)
			if err != nil {
				return err
			}
			if !ok {
				p.println(FormatError("Valor inválido: " + value))
				continue
			}
			if value == pr.current {
				break
			}
			pr.set(value)
			break prices
		}
	}

	fields = f.Fields()
	if fields.PriceYen != "" || fields.PriceReal != "" || fields.PriceDollar != "" {
		p.println(SubtleStyle.Render(fmt.Sprintf("   ¥ %s · R$ %s · $ %s", fields.PriceYen, fields.PriceReal, fields.PriceDollar)))
	}
	return nil
}

// askImage accepts an http(s) URL or the path of a local photo.
func (p *Prompter) askImage(ctx context.Context, f *editor.Form) error {
	current := f.Fields().Image
	shown := current
	if f.ImageMethod() == editor.ImageFromGallery || strings.HasPrefix(current, "data:") {
		shown = "foto anexada"
	}

	value, err := p.ask(ctx, "Imagem (URL ou arquivo)", shown)
	if err != nil {
		return err
	}

	switch {
	case value == shown:
		return nil
	case value == "":
		f.ClearImage()
		return nil
	case strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://"):
		img, urlErr := media.URLImage(value)
		if urlErr != nil {
			p.println(FormatError("URL de imagem inválida"))
			return nil
		}
		f.SetImageMethod(editor.ImageFromURL)
		f.SetImage(img)
		return nil
	default:
		prev := f.Fields().Image
		f.SetImageMethod(editor.ImageFromGallery)
		if captureErr := f.CaptureImage(ctx, media.FileCapturer{Path: value}); captureErr != nil {
			slog.Debug("Image capture failed", "path", value, "error", captureErr)
			p.println(FormatError("Erro ao processar imagem"))
			f.SetImage(prev)
			return nil
		}
		p.println(FormatSuccess("Imagem selecionada da galeria!"))
		return nil
	}
}

// Confirm asks a yes or no question. Anything but yes is no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	p.print(FormatPrompt(question + " [s/N]"))
	return p.in.yes(ctx)
}

// ask prints label with the current value and reads the answer.
func (p *Prompter) ask(ctx context.Context, label, current string) (string, error) {
	p.prompt(label, current)
	return p.in.answer(ctx, current)
}

func (p *Prompter) prompt(label, current string) {
	if current != "" {
		label += " [" + current + "]"
	}
	p.print(FormatPrompt(label))
}

func (p *Prompter) print(s string) {
	if _, err := fmt.Fprint(p.writer, s); err != nil {
		slog.Warn("Failed to write prompt", "error", err)
	}
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write prompt", "error", err)
	}
}
