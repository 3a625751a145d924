package server

import (
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"github.com/lumipallolabs/imagedive/internal/config"
)

type shellData struct {
	Nonce       string
	Backgrounds []string
}

// The shell is the whole front end: it connects to /ws and renders the
// groups the core folds. Everything inline carries the per-load nonce.
var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta http-equiv="Content-Security-Policy" content="default-src 'none'; img-src 'self' data:; style-src 'nonce-{{.Nonce}}'; script-src 'nonce-{{.Nonce}}'; connect-src 'self'">
<title>Image Browser</title>
<style nonce="{{.Nonce}}">
body { font-family: sans-serif; margin: 0; background: #1e1e1e; color: #ddd; }
header { display: flex; gap: 8px; padding: 8px; position: sticky; top: 0; background: #252526; }
.project h2 { margin: 16px 8px 4px; font-size: 15px; cursor: pointer; }
.group h3 { margin: 12px 8px 4px; font-size: 13px; cursor: pointer; }
.group.new h3 { color: #5eead4; }
.group .count { color: #888; margin-left: 6px; }
.group.collapsed .grid { display: none; }
.grid { display: flex; flex-wrap: wrap; gap: 6px; padding: 0 8px; }
.cell { display: flex; flex-direction: column; align-items: center; font-size: 11px; }
.cell img { object-fit: contain; }
.checkerboard img { background-image: conic-gradient(#999 25%, #666 0 50%, #999 0 75%, #666 0); background-size: 16px 16px; }
</style>
</head>
<body>
<header>
<input id="filter" type="search" placeholder="Filter by name">
<select id="background">{{range .Backgrounds}}<option value="{{.}}">{{.}}</option>{{end}}</select>
<input id="size" type="range" min="32" max="256">
<button id="refresh">Refresh</button>
</header>
<div id="root"></div>
<script nonce="{{.Nonce}}">
(function () {
  const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  const root = document.getElementById("root");
  const filter = document.getElementById("filter");
  const background = document.getElementById("background");
  const size = document.getElementById("size");
  let config = null, groups = null;

  const send = (command, payload) => ws.send(JSON.stringify({ command: command, data: payload }));
  const postConfig = () => send("post_config", config);
  const toggle = (key) => send("toggle_group", { key: key });

  function header(tag, text, count, key) {
    const h = document.createElement(tag);
    h.textContent = text;
    const badge = document.createElement("span");
    badge.className = "count";
    badge.textContent = count;
    h.appendChild(badge);
    h.onclick = function () { toggle(key); };
    return h;
  }

  function cell(img, color) {
    const box = document.createElement("div");
    box.className = "cell";
    const el = document.createElement("img");
    el.src = img.uri;
    el.title = img.name;
    el.width = el.height = config.imageSize;
    el.style.backgroundColor = color;
    if (config.lazyLoading) el.loading = "lazy";
    el.onclick = function (e) { send("copy_To_clipboard", { imageUri: img.uri, target: e.shiftKey ? "full" : e.altKey ? "relative" : "name" }); };
    el.ondblclick = function () { send("open_image_file", { imageUri: img.uri }); };
    el.oncontextmenu = function (e) { e.preventDefault(); send("reveal_image", { imageUri: img.uri }); };
    const label = document.createElement("span");
    label.textContent = img.name;
    box.appendChild(el);
    box.appendChild(label);
    return box;
  }

  function render() {
    root.textContent = "";
    if (!groups || !config) return;
    const [color, cls] = config.imageBackground.split(";");
    const needle = filter.value;
    const many = groups.projects.length > 1;
    groups.projects.forEach(function (project) {
      let parent = root;
      if (many) {
        const section = document.createElement("section");
        section.className = "project" + (project.expanded ? "" : " collapsed");
        const total = project.groups.reduce(function (n, g) { return n + g.imgs.length; }, 0);
        section.appendChild(header("h2", groups.commonBase + project.title, total, project.key));
        root.appendChild(section);
        if (!project.expanded) return;
        parent = section;
      }
      project.groups.forEach(function (group) {
        const imgs = needle ? group.imgs.filter(function (img) { return img.name.includes(needle); }) : group.imgs;
        if (needle && imgs.length === 0) return;
        const section = document.createElement("section");
        section.className = "group" + (group.expanded ? "" : " collapsed") + (group.isNew ? " new" : "") + (cls ? " " + cls : "");
        section.appendChild(header("h3", group.title, imgs.length, group.key));
        const grid = document.createElement("div");
        grid.className = "grid";
        imgs.forEach(function (img) { grid.appendChild(cell(img, color)); });
        section.appendChild(grid);
        parent.appendChild(section);
      });
    });
  }

  ws.onopen = function () { send("init_complete"); };
  ws.onmessage = function (event) {
    const msg = JSON.parse(event.data);
    switch (msg.command) {
    case "post_config":
      config = msg.data;
      background.value = config.imageBackground;
      size.value = config.imageSize;
      render();
      break;
    case "post_groups":
      groups = msg.data;
      render();
      break;
    case "reveal":
      window.focus();
      break;
    case "error":
      console.error(msg.data.message);
      break;
    }
  };
  filter.oninput = render;
  background.onchange = function () { config.imageBackground = background.value; postConfig(); render(); };
  size.onchange = function () { config.imageSize = Number(size.value); postConfig(); render(); };
  document.getElementById("refresh").onclick = function () { send("refresh_images"); };
})();
</script>
</body>
</html>
`))

func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	data := shellData{
		Nonce:       uuid.NewString(),
		Backgrounds: config.Backgrounds,
	}
	if err := shellTemplate.Execute(w, data); err != nil {
		s.logf("render shell: %v", err)
	}
}
