package tui

const helpMarkdown = `# Panel

## Chat

- **enter** (lista): activar el proyecto y cargar su conversación
- **tab**: alternar entre la lista y el cuadro de mensaje
- **enter** (mensaje): enviar al bot
- **n**: nuevo proyecto · **e**: editar · **d**: eliminar
- **r**: recargar la lista

## Usuarios

- **u**: abrir la vista de usuarios · **esc**: volver al chat
- **n**: nuevo usuario · **e**: editar · **d**: eliminar

## General

- **?**: esta ayuda
- **q / ctrl+c**: salir
`

func renderHelpModal(width int) string {
	body := renderMarkdown(helpMarkdown, modalBodyWidth(width))
	return renderModalBox(width, "Ayuda", body+"\n\n"+styleMuted().Render("enter/esc: cerrar"))
}
