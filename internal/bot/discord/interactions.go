package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/midnight-community/gatekeeper/internal/bot/connector"
)

// embedColor matches the community's dark accent used across bot embeds.
const embedColor = 0x0A0A0A

// onInteractionCreate converts one gateway interaction into a connector
// event, dispatches it, and renders the resulting prompt. Errors are logged
// and swallowed here; a bad event must never take the process down.
func (b *Bot) onInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	ev, ok := eventFromInteraction(i)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(b.baseCtx, interactionTimeout)
	defer cancel()

	prompt, err := b.dispatch(ctx, ev)
	if err != nil {
		b.logf("dispatch step %q for user %s: %v", ev.Step, ev.UserID, err)
		return
	}
	if prompt.Kind == connector.PromptNone {
		return
	}
	if err := b.respond(i.Interaction, prompt); err != nil {
		b.logf("respond to step %q for user %s: %v", ev.Step, ev.UserID, err)
	}
}

func eventFromInteraction(i *discordgo.InteractionCreate) (connector.Event, bool) {
	if i == nil || i.Interaction == nil {
		return connector.Event{}, false
	}
	ev := connector.Event{UserID: interactionUserID(i.Interaction)}
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		ev.Step = data.CustomID
		ev.Values = data.Values
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		ev.Step = data.CustomID
		ev.Fields = modalFields(data.Components)
	default:
		return connector.Event{}, false
	}
	if ev.Step == "" || ev.UserID == "" {
		return connector.Event{}, false
	}
	return ev, true
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func modalFields(components []discordgo.MessageComponent) map[string]string {
	fields := make(map[string]string)
	for _, component := range components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}

// respond renders a prompt as the interaction response. All prompts except
// the startup invitation are ephemeral.
func (b *Bot) respond(i *discordgo.Interaction, prompt connector.Prompt) error {
	if prompt.Kind == connector.PromptModal {
		return b.session.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID:   prompt.Step,
				Title:      prompt.Title,
				Components: modalRows(prompt.Fields),
			},
		})
	}

	data := &discordgo.InteractionResponseData{
		Flags: discordgo.MessageFlagsEphemeral,
	}
	if prompt.Title != "" || prompt.Footer != "" {
		data.Embeds = []*discordgo.MessageEmbed{promptEmbed(prompt)}
	} else {
		data.Content = prompt.Body
	}

	var components []discordgo.MessageComponent
	if prompt.Kind == connector.PromptSelect {
		components = append(components, selectRow(prompt))
	}
	if row, ok := buttonRow(prompt.Buttons); ok {
		components = append(components, row)
	}
	data.Components = components

	return b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func promptEmbed(prompt connector.Prompt) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       prompt.Title,
		Description: prompt.Body,
		Color:       embedColor,
	}
	if prompt.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: prompt.Footer}
	}
	return embed
}

func selectRow(prompt connector.Prompt) discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(prompt.Options))
	for _, option := range prompt.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label: option.Label,
			Value: option.Value,
		})
	}
	menu := discordgo.SelectMenu{
		MenuType: discordgo.StringSelectMenu,
		CustomID: prompt.Step,
		Options:  options,
	}
	if prompt.MaxValues > 1 {
		minValues := 0
		menu.MinValues = &minValues
		menu.MaxValues = prompt.MaxValues
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}}
}

func buttonRow(buttons []connector.Button) (discordgo.MessageComponent, bool) {
	if len(buttons) == 0 {
		return nil, false
	}
	components := make([]discordgo.MessageComponent, 0, len(buttons))
	for _, button := range buttons {
		style := discordgo.PrimaryButton
		if button.Secondary {
			style = discordgo.SecondaryButton
		}
		components = append(components, discordgo.Button{
			Label:    button.Label,
			Style:    style,
			CustomID: button.Step,
		})
	}
	return discordgo.ActionsRow{Components: components}, true
}

func modalRows(fields []connector.TextField) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    field.ID,
					Label:       field.Label,
					Style:       discordgo.TextInputShort,
					Placeholder: field.Placeholder,
					Required:    true,
					MaxLength:   field.MaxLength,
				},
			},
		})
	}
	return rows
}
