package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/compras/internal/editor"
	"github.com/Veraticus/compras/internal/media"
	"github.com/Veraticus/compras/internal/model"
	"github.com/Veraticus/compras/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

// Fields in form order.
const (
	fieldItemName formField = iota
	fieldImageMethod
	fieldImage
	fieldStoreName
	fieldCategory
	fieldCity
	fieldRegion
	fieldForWhom
	fieldYen
	fieldReal
	fieldDollar
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldItemName:    "Nome do Item *",
	fieldImageMethod: "Imagem (opcional)",
	fieldImage:       "",
	fieldStoreName:   "Loja *",
	fieldCategory:    "Categoria *",
	fieldCity:        "Cidade *",
	fieldRegion:      "Região *",
	fieldForWhom:     "Para quem *",
	fieldYen:         "Yen (¥)",
	fieldReal:        "Real (R$)",
	fieldDollar:      "Dólar ($)",
}

// requiredLabels maps missing field names to what the user sees.
var requiredLabels = map[string]string{
	"itemName":  "Nome do Item",
	"storeName": "Loja",
	"category":  "Categoria",
	"city":      "Cidade",
	"region":    "Região",
	"forWhom":   "Para quem",
}

var imageMethods = []editor.ImageMethod{editor.ImageFromURL, editor.ImageFromGallery, editor.ImageFromCamera}

func methodLabel(m editor.ImageMethod) string {
	switch m {
	case editor.ImageFromGallery:
		return "Galeria"
	case editor.ImageFromCamera:
		return "Foto"
	default:
		return "URL"
	}
}

// FormModel is the add/edit item form.
type FormModel struct {
	theme   themes.Theme
	form    *editor.Form
	choices map[formField][]string
	err     string
	info    string
	inputs  [fieldCount]textinput.Model
	focus   formField
	width   int
	busy    bool
}

// NewForm wraps an editor form.
func NewForm(form *editor.Form, theme themes.Theme) FormModel {
	m := FormModel{
		theme: theme,
		form:  form,
		width: 60,
	}
	m.seed()
	m.focusField(fieldItemName)
	return m
}

// seed loads every widget from the editor state.
func (m *FormModel) seed() {
	f := m.form.Fields()

	placeholders := map[formField]string{
		fieldItemName:  "Ex: Nintendo Switch, Kimono...",
		fieldStoreName: "Ex: Don Quijote, Bic Camera...",
		fieldRegion:    "Ex: Shibuya, Namba...",
		fieldForWhom:   "Ex: Minha esposa, João, Para mim...",
		fieldYen:       "0",
		fieldReal:      "0,00",
		fieldDollar:    "0,00",
	}
	values := map[formField]string{
		fieldItemName:  f.ItemName,
		fieldStoreName: f.StoreName,
		fieldRegion:    f.Region,
		fieldForWhom:   f.ForWhom,
		fieldYen:       f.PriceYen,
		fieldReal:      f.PriceReal,
		fieldDollar:    f.PriceDollar,
	}

	for field := range fieldCount {
		if !isTextField(field) {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 120
		in.Placeholder = placeholders[field]
		in.SetValue(values[field])
		m.inputs[field] = in
	}

	m.inputs[fieldImage].Placeholder = m.imagePlaceholder()
	if m.form.ImageMethod() == editor.ImageFromURL && !strings.HasPrefix(f.Image, "data:") {
		m.inputs[fieldImage].SetValue(f.Image)
	}

	m.choices = map[formField][]string{
		fieldCategory: withValue(model.CategoryNames(), f.Category),
		fieldCity:     withValue(model.CityNames(), f.City),
	}
}

// withValue appends v to options when it is set but unknown, so editing an
// item never loses its stored value.
func withValue(options []string, v string) []string {
	if v == "" {
		return options
	}
	for _, o := range options {
		if o == v {
			return options
		}
	}
	return append(options, v)
}

func isTextField(f formField) bool {
	switch f {
	case fieldImageMethod, fieldCategory, fieldCity:
		return false
	default:
		return true
	}
}

// Form returns the editor state.
func (m FormModel) Form() *editor.Form {
	return m.form
}

// Editing reports whether this is an edit form.
func (m FormModel) Editing() bool {
	return m.form.Editing()
}

// SetBusy marks a submit in flight. Submits are ignored while busy.
func (m *FormModel) SetBusy(busy bool) {
	m.busy = busy
}

// Busy reports whether a submit is in flight.
func (m FormModel) Busy() bool {
	return m.busy
}

// Err returns the message shown under the form.
func (m FormModel) Err() string {
	return m.err
}

// Resize updates the component width.
func (m *FormModel) Resize(width int) {
	m.width = width
	for field := range fieldCount {
		if isTextField(field) {
			m.inputs[field].Width = max(min(width-24, 50), 10)
		}
	}
}

// Init starts the cursor blinking.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if isTextField(m.focus) {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return FormCancelledMsg{} }
	case "ctrl+s":
		return m, m.submit()
	case "tab", "down":
		return m, m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "ctrl+x":
		m.form.ClearImage()
		m.inputs[fieldImage].SetValue("")
		m.info = ""
		return m, nil
	case "enter":
		if m.focus == fieldImage && m.form.ImageMethod() != editor.ImageFromURL {
			return m, m.requestCapture()
		}
		if m.focus == fieldDollar {
			return m, m.submit()
		}
		return m, m.focusField(m.focus + 1)
	case "left":
		if !isTextField(m.focus) {
			m.cycle(-1)
			return m, nil
		}
	case "right":
		if !isTextField(m.focus) {
			m.cycle(1)
			return m, nil
		}
	}

	if !isTextField(m.focus) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(keyMsg)
	m.sync(m.focus)
	return m, cmd
}

func (m *FormModel) focusField(f formField) tea.Cmd {
	if isTextField(m.focus) {
		m.inputs[m.focus].Blur()
	}
	m.focus = f
	if isTextField(f) {
		return m.inputs[f].Focus()
	}
	return nil
}

// cycle moves a choice field by delta. Choices include an unset value
// first, except for the image method.
func (m *FormModel) cycle(delta int) {
	if m.focus == fieldImageMethod {
		cur := 0
		for i, im := range imageMethods {
			if im == m.form.ImageMethod() {
				cur = i
			}
		}
		next := imageMethods[(cur+delta+len(imageMethods))%len(imageMethods)]
		m.form.SetImageMethod(next)
		m.inputs[fieldImage].SetValue("")
		m.inputs[fieldImage].Placeholder = m.imagePlaceholder()
		m.info = ""
		return
	}

	options := append([]string{""}, m.choices[m.focus]...)
	current := m.choiceValue(m.focus)
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
		}
	}
	value := options[(idx+delta+len(options))%len(options)]

	switch m.focus {
	case fieldCategory:
		m.form.SetCategory(value)
	case fieldCity:
		m.form.SetCity(value)
	}
}

func (m FormModel) choiceValue(f formField) string {
	switch f {
	case fieldCategory:
		return m.form.Fields().Category
	case fieldCity:
		return m.form.Fields().City
	}
	return ""
}

// sync pushes a text widget into the editor. Price edits rewrite the other
// two price widgets.
func (m *FormModel) sync(f formField) {
	v := m.inputs[f].Value()
	switch f {
	case fieldItemName:
		m.form.SetItemName(v)
	case fieldStoreName:
		m.form.SetStoreName(v)
	case fieldRegion:
		m.form.SetRegion(v)
	case fieldForWhom:
		m.form.SetForWhom(v)
	case fieldImage:
		if m.form.ImageMethod() == editor.ImageFromURL {
			m.form.SetImage(v)
		}
	case fieldYen, fieldReal, fieldDollar:
		switch f {
		case fieldYen:
			m.form.SetYen(v)
		case fieldReal:
			m.form.SetReal(v)
		default:
			m.form.SetDollar(v)
		}
		fields := m.form.Fields()
		if f != fieldYen {
			m.inputs[fieldYen].SetValue(fields.PriceYen)
		}
		if f != fieldReal {
			m.inputs[fieldReal].SetValue(fields.PriceReal)
		}
		if f != fieldDollar {
			m.inputs[fieldDollar].SetValue(fields.PriceDollar)
		}
	}
}

func (m *FormModel) requestCapture() tea.Cmd {
	req := CaptureRequestMsg{
		Method: m.form.ImageMethod(),
		Path:   strings.TrimSpace(m.inputs[fieldImage].Value()),
	}
	m.err = ""
	m.info = ""
	return func() tea.Msg { return req }
}

// CaptureDone applies the outcome of a capture requested by the form. On
// failure the current image is kept.
func (m *FormModel) CaptureDone(image string, captureErr error) error {
	err := m.form.CaptureImage(context.Background(), media.CapturerFunc(func(context.Context) (string, error) {
		return image, captureErr
	}))
	if err != nil {
		m.info = ""
		if m.form.ImageMethod() == editor.ImageFromCamera {
			m.err = "Erro ao acessar câmera. Verifique as permissões."
		} else {
			m.err = "Erro ao processar imagem"
		}
		return err
	}
	m.err = ""
	if m.form.ImageMethod() == editor.ImageFromCamera {
		m.info = "Foto capturada!"
	} else {
		m.info = "Imagem selecionada da galeria!"
	}
	return nil
}

func (m *FormModel) submit() tea.Cmd {
	if m.busy {
		return nil
	}

	if m.form.ImageMethod() == editor.ImageFromURL {
		img, err := media.URLImage(m.inputs[fieldImage].Value())
		if err != nil {
			m.err = "URL de imagem inválida"
			return nil
		}
		m.form.SetImage(img)
	}

	intent, ok := m.form.Submit()
	if !ok {
		labels := make([]string, 0, 6)
		for _, name := range m.form.Missing() {
			labels = append(labels, requiredLabels[name])
		}
		m.err = "Preencha os campos obrigatórios: " + strings.Join(labels, ", ")
		return nil
	}

	m.err = ""
	m.info = ""
	if intent.Kind == editor.IntentCreate {
		m.seed()
		m.focusField(fieldItemName)
	}
	return func() tea.Msg { return FormSubmittedMsg{Intent: intent} }
}

func (m FormModel) imagePlaceholder() string {
	switch m.form.ImageMethod() {
	case editor.ImageFromGallery:
		return "caminho do arquivo, Enter para anexar"
	case editor.ImageFromCamera:
		return "Enter para tirar a foto"
	default:
		return "https://..."
	}
}

// View renders the form.
func (m FormModel) View() string {
	title := "Adicionar Novo Item"
	action := "Adicionar Item"
	if m.form.Editing() {
		title = "Editar Item"
		action = "Salvar Alterações"
	}

	lines := []string{m.theme.Title.Render(title), ""}
	for field := range fieldCount {
		if field == fieldYen {
			lines = append(lines, "", m.theme.Subtitle.Render("💰 Preços (opcionais)"))
		}
		lines = append(lines, m.renderField(field))
	}
	lines = append(lines,
		m.theme.Faint.Render("Conversão automática (Wise): 1¥ = R$ 0,034 | 1$ = R$ 5,20"),
		"",
	)

	if m.busy {
		busy := "Adicionando item..."
		if m.form.Editing() {
			busy = "Atualizando item..."
		}
		lines = append(lines, m.theme.StatusPending.Render(busy))
	}
	if m.err != "" {
		lines = append(lines, m.theme.StatusError.Render(m.err))
	}
	if m.info != "" {
		lines = append(lines, m.theme.StatusSuccess.Render(m.info))
	}

	lines = append(lines, m.theme.Faint.Render(fmt.Sprintf(
		"ctrl+s %s · tab próximo campo · ←/→ escolher · ctrl+x limpar imagem · esc Cancelar", action)))

	return m.theme.BorderedBox.
		Width(min(max(m.width, 40), 90)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m FormModel) renderField(field formField) string {
	focused := field == m.focus
	cursor := "  "
	labelStyle := m.theme.Field
	if focused {
		cursor = "› "
		labelStyle = m.theme.FocusedField
	}

	label := fieldLabels[field]
	if field == fieldImage {
		label = methodLabel(m.form.ImageMethod())
	}

	var value string
	switch field {
	case fieldImageMethod:
		parts := make([]string, 0, len(imageMethods))
		for _, im := range imageMethods {
			if im == m.form.ImageMethod() {
				parts = append(parts, m.theme.ActiveTab.Render(methodLabel(im)))
			} else {
				parts = append(parts, m.theme.Tab.Render(methodLabel(im)))
			}
		}
		value = strings.Join(parts, " ")
	case fieldCategory, fieldCity:
		v := m.choiceValue(field)
		if v == "" {
			v = m.theme.Faint.Render("Selecione...")
		} else if field == fieldCategory {
			v = model.CategoryIcon(v) + " " + v
		}
		value = "‹ " + v + " ›"
	default:
		value = m.inputs[field].View()
		if field == fieldImage && strings.HasPrefix(m.form.Fields().Image, "data:") {
			value += " " + m.theme.StatusSuccess.Render(fmt.Sprintf("foto anexada (%d KB)", len(m.form.Fields().Image)/1024))
		}
	}

	return cursor + labelStyle.Render(fmt.Sprintf("%-18s", label)) + " " + value
}
