package page

// pageTemplate is the root document. Element ids are the contract with
// the client script and the Patch keys in populate.go.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="icon" href="{{.Patch.AvatarURL}}">
  <style>` + cssContent + `</style>
</head>
<body data-live="{{.LiveURL}}" data-default-avatar="{{.DefaultAvatarURL}}">
  <div class="dots-container" id="dotsContainer" aria-hidden="true"></div>
  <main class="container">
    <nav class="tabs" id="tabsContainer">
      {{- range .Panels}}
      <a class="tab{{if .Active}} active{{end}}" data-tab="{{.Key}}" href="?tab={{.Key}}">{{.Label}}</a>
      {{- end}}
    </nav>
    <div class="tab-contents" id="contentContainer">
      {{- range .Panels}}
      <section class="tab-content{{if .Active}} active{{end}}" id="{{.Key}}">
        {{- if eq .Type "profile"}}
        <h1 class="name" id="userName">{{index $.Patch.Text "userName"}}</h1>
        <p class="description" id="userDescription">{{index $.Patch.Text "userDescription"}}</p>
        <div class="discord-profile">
          <div class="discord-avatar">
            <img src="{{$.Patch.AvatarURL}}" alt="Discord Avatar" id="discordAvatar" width="64" height="64">
            <div class="status-indicator {{$.Patch.StatusClass}}" id="statusIndicator"></div>
          </div>
          <div class="discord-info">
            <span class="discord-name" id="discordName">{{index $.Patch.Text "discordName"}}</span>
            <span class="discord-status" id="discordStatus">{{index $.Patch.Text "discordStatus"}}</span>
            <span class="discord-activity" id="discordActivity">{{index $.Patch.Text "discordActivity"}}</span>
          </div>
        </div>
        {{- else if eq .Type "text"}}
        <h2>{{.Heading}}</h2>
        {{.Body}}
        {{- end}}
      </section>
      {{- end}}
    </div>
    <footer class="playlist">
      <p class="playlist-description" id="playlistDescription">{{index .Patch.Text "playlistDescription"}}</p>
      {{- if .Songs}}
      <ol class="songs">
        {{- range .Songs}}
        <li>{{if .URL}}<a href="{{.URL}}" rel="noopener" target="_blank">{{.Title}}</a>{{else}}{{.Title}}{{end}}{{if .Artist}} <span class="artist">{{.Artist}}</span>{{end}}</li>
        {{- end}}
      </ol>
      {{- end}}
    </footer>
  </main>
  <script>` + jsContent + `</script>
</body>
</html>`

const cssContent = `
:root {
  --bg: #0b0b10;
  --text: #e6e6f0;
  --muted: #8a8aa3;
  --accent: #a78bfa;
  --online: #23a55a;
  --away: #f0b232;
  --dnd: #f23f43;
  --offline: #80848e;
}
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
body {
  font-family: "JetBrains Mono", ui-monospace, SFMono-Regular, Menlo, monospace;
  background: var(--bg);
  color: var(--text);
  min-height: 100vh;
  overflow-x: hidden;
}
.container { position: relative; z-index: 1; max-width: 640px; margin: 0 auto; padding: 64px 24px; }
.tabs { display: flex; gap: 16px; margin-bottom: 32px; }
.tab { color: var(--muted); text-decoration: none; padding-bottom: 4px; border-bottom: 1px solid transparent; }
.tab:hover { color: var(--text); }
.tab.active { color: var(--text); border-bottom-color: var(--accent); }
.tab-content { display: none; }
.tab-content.active { display: block; }
.tab-content h2 { margin-bottom: 12px; }
.tab-content p { color: var(--muted); line-height: 1.7; }
.name { font-size: 2rem; margin-bottom: 8px; }
.description { color: var(--muted); margin-bottom: 24px; }
.discord-profile { display: flex; align-items: center; gap: 12px; }
.discord-avatar { position: relative; width: 64px; height: 64px; }
.discord-avatar img { width: 64px; height: 64px; border-radius: 50%; }
.status-indicator { position: absolute; right: 0; bottom: 0; width: 16px; height: 16px; border-radius: 50%; border: 3px solid var(--bg); }
.status-indicator.online { background: var(--online); }
.status-indicator.away { background: var(--away); }
.status-indicator.dnd { background: var(--dnd); }
.status-indicator.offline { background: var(--offline); }
.discord-info { display: flex; flex-direction: column; }
.discord-status, .discord-activity { color: var(--muted); font-size: 0.85rem; }
.playlist { margin-top: 48px; color: var(--muted); }
.songs { margin: 12px 0 0 20px; }
.songs a { color: var(--text); }
.artist { color: var(--muted); }
.dots-container { position: fixed; inset: 0; overflow: hidden; pointer-events: none; z-index: 0; }
.dot { position: absolute; bottom: -10px; border-radius: 50%; background: #fff; animation-name: float-up, twinkle; animation-timing-function: linear, ease-in-out; animation-iteration-count: 1, infinite; }
.dot.small { width: 1px; height: 1px; }
.dot.medium { width: 2px; height: 2px; }
.dot.large { width: 3px; height: 3px; }
@keyframes float-up { from { transform: translateY(0); } to { transform: translateY(-110vh); } }
@keyframes twinkle { 0%, 100% { opacity: 0.2; } 50% { opacity: 0.9; } }
`

const jsContent = `
(function () {
  var body = document.body;
  var defaultAvatar = body.dataset.defaultAvatar;

  var tabs = document.querySelectorAll('.tab');
  var panels = document.querySelectorAll('.tab-content');
  tabs.forEach(function (tab) {
    tab.addEventListener('click', function (e) {
      var target = document.getElementById(tab.dataset.tab);
      if (!target) return;
      e.preventDefault();
      tabs.forEach(function (t) { t.classList.remove('active'); });
      panels.forEach(function (p) { p.classList.remove('active'); });
      tab.classList.add('active');
      target.classList.add('active');
      history.replaceState(null, '', '?tab=' + encodeURIComponent(tab.dataset.tab));
    });
  });

  var avatar = document.getElementById('discordAvatar');
  if (avatar) {
    avatar.addEventListener('error', function () {
      if (avatar.src !== defaultAvatar) avatar.src = defaultAvatar;
    });
  }

  var dotsContainer = document.getElementById('dotsContainer');
  var liveDots = {};
  function addDot(d) {
    if (!dotsContainer || liveDots[d.id]) return;
    var el = document.createElement('div');
    el.className = 'dot ' + d.size;
    el.style.left = d.left + '%';
    el.style.animationDuration = d.duration + 's, 3s';
    el.style.animationDelay = d.delay + 's';
    dotsContainer.appendChild(el);
    liveDots[d.id] = true;
    setTimeout(function () {
      if (el.parentNode) el.parentNode.removeChild(el);
      delete liveDots[d.id];
    }, (d.duration + 5) * 1000);
  }

  function applyPatch(p) {
    Object.keys(p.text || {}).forEach(function (id) {
      var el = document.getElementById(id);
      if (el) el.textContent = p.text[id];
    });
    if (avatar && p.avatar_url) avatar.src = p.avatar_url;
    var indicator = document.getElementById('statusIndicator');
    if (indicator) indicator.className = 'status-indicator ' + p.status_class;
  }

  function connect() {
    if (!window.WebSocket) return;
    var scheme = location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(scheme + location.host + body.dataset.live);
    ws.onmessage = function (ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (err) { return; }
      if (msg.type === 'presence' && msg.patch) applyPatch(msg.patch);
      if (msg.type === 'dots' && msg.dots) msg.dots.forEach(addDot);
    };
    ws.onclose = function () { setTimeout(connect, 5000); };
  }
  connect();
})();
`
