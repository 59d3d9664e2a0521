package httpserver

// indexHTML is a single-page dashboard over the JSON API.
const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Energy Monitor</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem auto; max-width: 960px; padding: 0 1rem; color: #1f2937; }
  h1 { font-size: 1.5rem; }
  section { border: 1px solid #e5e7eb; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: .25rem .5rem; border-bottom: 1px solid #f3f4f6; }
  .info { color: #2563eb; } .warning { color: #d97706; } .success { color: #059669; }
  .err { color: #dc2626; }
  form { display: flex; gap: .5rem; flex-wrap: wrap; align-items: end; }
</style>
</head>
<body>
<h1>Energy Monitor</h1>

<section>
  <h2>This month</h2>
  <form id="filters">
    <label>Meter <select id="meter">
      <option value="electricity">Electricity</option>
      <option value="water">Water</option>
      <option value="gas">Gas</option>
    </select></label>
    <label>Region <select id="region"></select></label>
    <button type="submit">Refresh</button>
    <a href="/api/export.csv?kind=readings">Readings CSV</a>
    <a id="consumption-csv" href="/api/export.csv?kind=consumption">Consumption CSV</a>
  </form>
  <p id="summary"></p>
  <p id="bill"></p>
</section>

<section>
  <h2>Insights</h2>
  <ul id="insights"></ul>
</section>

<section>
  <h2>Add reading</h2>
  <form id="add">
    <label>Value <input id="value" type="number" step="any" min="0" required></label>
    <label>Notes <input id="notes" type="text"></label>
    <button type="submit">Save</button>
  </form>
  <p id="add-status"></p>
</section>

<section>
  <h2>Readings</h2>
  <table>
    <thead><tr><th>Time (UTC)</th><th>Value</th><th>Method</th><th>Notes</th><th></th></tr></thead>
    <tbody id="readings"></tbody>
  </table>
</section>

<section>
  <h2>Tips</h2>
  <ul id="tips"></ul>
</section>

<script>
const $ = (id) => document.getElementById(id);

async function api(path, opts) {
  const res = await fetch(path, opts);
  if (res.status === 204) return null;
  const body = await res.json();
  if (!res.ok) throw new Error(body.message || res.statusText);
  return body;
}

function text(tag, value, cls) {
  const el = document.createElement(tag);
  el.textContent = value;
  if (cls) el.className = cls;
  return el;
}

async function loadRegions() {
  const data = await api('/api/regions');
  const sel = $('region');
  sel.replaceChildren();
  for (const r of data.regions) {
    const opt = text('option', r);
    opt.value = r;
    if (r === data.default) opt.selected = true;
    sel.append(opt);
  }
}

async function refresh() {
  const meter = $('meter').value;
  $('consumption-csv').href = '/api/export.csv?kind=consumption&meter_type=' + meter;
  try {
    const c = await api('/api/consumption?meter_type=' + meter);
    $('summary').textContent = 'Used ' + c.monthly.toFixed(2) + ' this month, ' + c.total.toFixed(2) + ' overall.';

    if (meter === 'electricity') {
      const b = await api('/api/bill?region=' + encodeURIComponent($('region').value));
      $('bill').textContent = 'Estimated bill (' + b.appliedRegion + '): ' + b.amount.toFixed(2);
    } else {
      $('bill').textContent = '';
    }

    const ins = await api('/api/insights?meter_type=' + meter);
    $('insights').replaceChildren(...ins.insights.map(i => text('li', i.title + ': ' + i.message, i.severity)));

    const list = await api('/api/readings?meter_type=' + meter);
    $('readings').replaceChildren(...list.readings.slice().reverse().map(r => {
      const tr = document.createElement('tr');
      tr.append(text('td', r.time), text('td', r.value), text('td', r.method || ''), text('td', r.notes || ''));
      const del = text('button', 'Delete');
      del.onclick = async () => { await api('/api/readings/' + r.id, { method: 'DELETE' }); refresh(); };
      const td = document.createElement('td');
      td.append(del);
      tr.append(td);
      return tr;
    }));
  } catch (e) {
    $('summary').replaceChildren(text('span', e.message, 'err'));
  }
}

async function loadTips() {
  const data = await api('/api/tips');
  $('tips').replaceChildren(...data.tips.map(t => text('li', t.icon + ' ' + t.title + ' (' + t.estimatedSavings + '): ' + t.description)));
}

$('filters').onsubmit = (e) => { e.preventDefault(); refresh(); };
$('add').onsubmit = async (e) => {
  e.preventDefault();
  try {
    await api('/api/readings', {
      method: 'POST',
      headers: { 'Content-Type': 'application/json' },
      body: JSON.stringify({ value: parseFloat($('value').value), meterType: $('meter').value, notes: $('notes').value }),
    });
    $('add-status').textContent = 'Saved.';
    refresh();
  } catch (err) {
    $('add-status').replaceChildren(text('span', err.message, 'err'));
  }
};

loadRegions().then(refresh);
loadTips();
</script>
</body>
</html>
`
