package web

// Single page portal: wallet card, migration card and history, fed by /api/stream.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>AIA Token Migration</title>
  <link rel="preconnect" href="https://fonts.googleapis.com">
  <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
  <link href="https://fonts.googleapis.com/css2?family=Space+Mono:wght@400;700&display=swap" rel="stylesheet">
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
      --ok:#1f9d55;
      --err:#c53030;
    }
    * { box-sizing:border-box; }
    body {
      margin:0;
      min-height:100vh;
      display:flex;
      align-items:center;
      justify-content:center;
      padding:2rem;
      background:var(--bg);
      color:var(--ink);
      font-family:'Space Mono','JetBrains Mono',monospace;
    }
    #app {
      width:min(560px, 96vw);
      background:var(--panel);
      border:3px solid var(--ink);
      padding:2rem;
      box-shadow:12px 12px 0 rgba(0,0,0,.15);
      display:flex;
      flex-direction:column;
      gap:1.5rem;
    }
    h1 { font-size:1.2rem; margin:0; }
    .row { display:flex; justify-content:space-between; gap:1rem; }
    .muted { color:var(--ink-soft); font-size:.8rem; }
    .balance { font-size:1.4rem; font-weight:700; }
    input, select, button {
      font:inherit;
      border:2px solid var(--ink);
      padding:.5rem .75rem;
      background:var(--bg);
    }
    input { flex:1; }
    button { cursor:pointer; background:var(--ink); color:var(--bg); }
    button:disabled { opacity:.4; cursor:default; }
    .error { color:var(--err); min-height:1.2rem; }
    .success { color:var(--ok); }
    table { width:100%; border-collapse:collapse; font-size:.8rem; }
    td, th { border-bottom:1px solid var(--ink-soft); padding:.25rem; text-align:left; }
  </style>
</head>
<body>
  <div id="app">
    <div class="row">
      <h1>AIA Token Migration</h1>
      <div id="wallet"></div>
    </div>
    <div class="row">
      <div>
        <div class="muted">AIA (BSC Network)</div>
        <div class="balance" id="legacy">0.00</div>
      </div>
      <div>
        <div class="muted">AIA (AIA Chain)</div>
        <div class="balance" id="native">0.00</div>
      </div>
    </div>
    <div class="row">
      <input id="amount" placeholder="0.00" inputmode="decimal" />
      <button id="max" type="button">MAX</button>
    </div>
    <div class="muted">You will receive <span id="receive">0</span> AIA (1:1)</div>
    <div class="error" id="message"></div>
    <button id="action" type="button">Connect Wallet</button>
    <table>
      <thead><tr><th>When</th><th>Amount</th><th>Status</th></tr></thead>
      <tbody id="history"></tbody>
    </table>
  </div>
  <script>
    const $ = (id) => document.getElementById(id);
    let state = null;
    let providers = [];

    async function call(method, path, body) {
      const res = await fetch(path, {
        method,
        headers: body ? {'Content-Type': 'application/json'} : {},
        body: body ? JSON.stringify(body) : undefined,
      });
      const data = await res.json();
      if (!res.ok) throw new Error(data.error || res.statusText);
      return data;
    }

    function render(s) {
      state = s;
      $('legacy').textContent = s.legacy;
      $('native').textContent = s.native;
      $('receive').textContent = s.receive || '0';
      if (document.activeElement !== $('amount')) $('amount').value = s.amount;
      $('message').textContent = s.error || '';
      $('message').className = s.status === 'success' ? 'success' : 'error';
      if (s.status === 'success') $('message').textContent = 'Migration successful';
      $('action').textContent = s.action;
      $('action').disabled = s.busy || s.disabled;
      $('max').disabled = !s.connected || s.busy;
      const w = $('wallet');
      w.innerHTML = '';
      if (s.connected) {
        w.textContent = s.short_address + ' ';
        const b = document.createElement('button');
        b.textContent = 'Disconnect';
        b.onclick = () => call('POST', '/api/disconnect').then(render);
        w.appendChild(b);
      } else {
        const sel = document.createElement('select');
        sel.id = 'provider';
        providers.forEach((p) => {
          const o = document.createElement('option');
          o.value = p.name;
          o.textContent = p.name;
          sel.appendChild(o);
        });
        w.appendChild(sel);
      }
      if (s.status === 'success' || s.status === 'error') loadHistory();
    }

    async function loadHistory() {
      const rows = await call('GET', '/api/history');
      $('history').innerHTML = rows.slice().reverse().map((r) =>
        '<tr><td>' + new Date(r.created_at).toLocaleString() + '</td><td>' + r.amount +
        '</td><td>' + r.status + '</td></tr>').join('');
    }

    $('amount').addEventListener('input', (e) => {
      call('POST', '/api/amount', {amount: e.target.value}).then(render).catch(() => {
        e.target.value = state ? state.amount : '';
      });
    });
    $('max').onclick = () => call('POST', '/api/amount/max').then(render);
    $('action').onclick = () => {
      if (!state || !state.connected) {
        $('action').disabled = true;
        $('action').textContent = 'Connecting...';
        call('POST', '/api/connect', {provider: $('provider').value}).then(render)
          .catch((err) => { $('message').textContent = err.message; render(state); });
        return;
      }
      call('POST', '/api/migrate').then(render).catch((err) => { $('message').textContent = err.message; });
    };

    call('GET', '/api/providers').then((p) => {
      providers = p;
      return call('GET', '/api/state');
    }).then(render);
    loadHistory();

    const events = new EventSource('/api/stream');
    events.addEventListener('snapshot', (e) => render(JSON.parse(e.data)));
  </script>
</body>
</html>
`
